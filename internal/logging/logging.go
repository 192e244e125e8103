// Package logging manages the logger used by the jsonpatch command line tool.
package logging

import (
	"github.com/gruntwork-io/go-commons/logging"
	"github.com/sirupsen/logrus"
)

// ProjectName is attached to every log entry.
const ProjectName = "jsonpatch"

func GetProjectLogger() *logrus.Entry {
	return logging.GetLogger(ProjectName, "")
}

// SetLevel sets the level for loggers created afterwards.
func SetLevel(level logrus.Level) {
	logging.SetGlobalLogLevel(level)
}
