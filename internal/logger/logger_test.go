package logger

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type LoggerTestSuite struct {
	suite.Suite
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (suite *LoggerTestSuite) TestNewLogger() {
	log, err := NewLogger()
	suite.NoError(err)
	suite.NotNil(log)
	suite.NotNil(log.Logger)
}

func (suite *LoggerTestSuite) TestNewNopLogger() {
	log := NewNopLogger()
	suite.NotNil(log)

	// Writing through a nop logger must not panic.
	log.Info("ignored", zap.String("key", "value"))
	log.Warn("ignored")
}

func (suite *LoggerTestSuite) TestSyncNilInner() {
	log := &Logger{Logger: nil}
	suite.NoError(log.Sync())
}

func (suite *LoggerTestSuite) TestLogging() {
	log, err := NewLogger()
	suite.NoError(err)

	// These should not panic.
	log.Info("test info message")
	log.Debug("test debug message")
	log.Warn("test warn message")
	log.Error("test error message")
	_ = log.Sync()
}
