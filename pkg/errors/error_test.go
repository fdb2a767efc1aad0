package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidParameter, err.Code)
	suite.Equal("invalid parameter", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeUnknownStrategy, "unknown strategy %q", "momentum")
	suite.Equal(ErrCodeUnknownStrategy, err.Code)
	suite.Equal(`unknown strategy "momentum"`, err.Message)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeJournalFailed, "failed to persist trade", cause)
	suite.Equal(ErrCodeJournalFailed, err.Code)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("parse error")
	err := Wrapf(ErrCodeDataLoadFailed, cause, "failed to load %s", "bars.csv")
	suite.Equal(ErrCodeDataLoadFailed, err.Code)
	suite.Equal("failed to load bars.csv", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Equal("[100] invalid parameter", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeEmptyPriceSeries, "price series is empty", cause)
	suite.Equal("[200] price series is empty: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeEmptyPriceSeries, "price series is empty", cause)
	suite.Equal(cause, err.Unwrap())

	bare := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Nil(bare.Unwrap())
}

func (suite *ErrorTestSuite) TestGetCode() {
	err := New(ErrCodeEngineCompleted, "engine already completed")
	suite.Equal(ErrCodeEngineCompleted, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromWrapped() {
	cause := New(ErrCodeEmptyPriceSeries, "price series is empty")
	err := Wrap(ErrCodeEngineNotReady, "engine not ready", cause)
	// GetCode returns the outermost code.
	suite.Equal(ErrCodeEngineNotReady, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeFromStandardError() {
	err := errors.New("standard error")
	suite.Equal(ErrCodeUnknown, GetCode(err))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeMissingStrategy, "no strategy attached")
	suite.True(HasCode(err, ErrCodeMissingStrategy))
	suite.False(HasCode(err, ErrCodeMissingData))
}

func (suite *ErrorTestSuite) TestErrorsIsThroughChain() {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeJournalFailed, "journal write failed", cause)
	suite.True(errors.Is(err, cause))
}

func (suite *ErrorTestSuite) TestErrorCodeValues() {
	suite.Equal(ErrorCode(1), ErrCodeUnknown)
	suite.Equal(ErrorCode(100), ErrCodeInvalidParameter)
	suite.Equal(ErrorCode(200), ErrCodeEmptyPriceSeries)
	suite.Equal(ErrorCode(300), ErrCodeIndicatorCalculation)
	suite.Equal(ErrorCode(400), ErrCodeUnknownStrategy)
	suite.Equal(ErrorCode(500), ErrCodeJournalFailed)
	suite.Equal(ErrorCode(600), ErrCodeEngineNotReady)
}
