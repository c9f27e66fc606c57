package helpers

import (
	"io"
	"os"

	"github.com/samber/oops"
	"github.com/sirupsen/logrus"
)

// NewLogger creates a configured Logrus logger: text with debug level in
// development, JSON at info level elsewhere.
func NewLogger(appName, env string) *logrus.Logger {
	return newLogger(os.Stdout, appName, env)
}

func newLogger(out io.Writer, appName, env string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.WithFields(logrus.Fields{"app": appName, "env": env}).Info("logger initialized")
	return logger
}

// ErrorFields flattens err into log fields, lifting the oops code, domain
// and context when present.
func ErrorFields(err error, fields logrus.Fields) logrus.Fields {
	out := logrus.Fields{}
	for k, v := range fields {
		out[k] = v
	}
	if err == nil {
		return out
	}
	out["error"] = err.Error()
	if oe, ok := oops.AsOops(err); ok {
		if code := oe.Code(); code != "" {
			out["code"] = code
		}
		if domain := oe.Domain(); domain != "" {
			out["domain"] = domain
		}
		for k, v := range oe.Context() {
			if _, taken := out[k]; !taken {
				out[k] = v
			}
		}
	}
	return out
}

// LogError logs msg at error level with err flattened by ErrorFields.
func LogError(logger logrus.FieldLogger, msg string, err error, fields logrus.Fields) {
	logger.WithFields(ErrorFields(err, fields)).Error(msg)
}

// LogInfo logs msg at info level with the given fields.
func LogInfo(logger logrus.FieldLogger, msg string, fields logrus.Fields) {
	logger.WithFields(fields).Info(msg)
}
