package utils

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogger sets level and formatter on the standard logrus logger.
// format "json" switches to JSON lines; anything else keeps key=value text.
func ConfigureLogger(level, format string) {
	log.SetOutput(os.Stdout)
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})
	}

	lvl, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

func eventFields(requestID, module, action string) log.Fields {
	return log.Fields{
		"module":     strings.ToUpper(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}
}

// LogEvent prints a standardized line with module/action/request_id.
// Avoid logging payloads; message should be a summary.
func LogEvent(requestID, module, action, message string) {
	log.WithFields(eventFields(requestID, module, action)).Info(message)
}

// LogWarn records a failure that was deliberately swallowed.
func LogWarn(requestID, module, action string, err error) {
	log.WithFields(eventFields(requestID, module, action)).WithError(err).Warn("ignored failure")
}

// LogError records a failure that is being returned to the caller.
func LogError(requestID, module, action string, err error) {
	log.WithFields(eventFields(requestID, module, action)).WithError(err).Error("request failed")
}
