package testutil

import (
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// Logger returns a logrus logger that discards output and records entries
// in the returned hook for inspection.
func Logger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}
