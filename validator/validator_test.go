package validator_test

import (
	"errors"
	"testing"
	"time"

	"github.com/andyle182810/triplewhale/validator"
	"github.com/stretchr/testify/require"
)

type envStruct struct {
	Token    string        `env:"API_TOKEN" validate:"required"`
	Level    string        `env:"LOG_LEVEL" validate:"oneof=debug info"`
	Zone     string        `env:"TIMEZONE"  validate:"timezone"`
	Timeout  time.Duration `env:"TIMEOUT"   validate:"gt=0"`
	Internal string        `env:"-"         validate:"required"`
}

func validInput() envStruct {
	return envStruct{
		Token:    "t",
		Level:    "info",
		Zone:     "America/Chicago",
		Timeout:  time.Second,
		Internal: "x",
	}
}

func TestValidate_Success(t *testing.T) {
	t.Parallel()

	require.NoError(t, validator.New("env").Validate(validInput()))
}

func TestValidate_ReportsFieldsByTagName(t *testing.T) {
	t.Parallel()

	input := validInput()
	input.Token = ""
	input.Level = "loud"

	err := validator.New("env").Validate(input)

	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))
	require.Len(t, validationErrors, 2)

	require.Equal(t, "API_TOKEN", validationErrors[0].Field)
	require.Equal(t, "required", validationErrors[0].Tag)
	require.Equal(t, "API_TOKEN is required", validationErrors[0].Message)

	require.Equal(t, "LOG_LEVEL", validationErrors[1].Field)
	require.Equal(t, "LOG_LEVEL must be one of [debug info]", validationErrors[1].Message)
	require.Equal(t, "loud", validationErrors[1].Value)

	require.Equal(t, "API_TOKEN is required; LOG_LEVEL must be one of [debug info]", err.Error())
}

func TestValidate_TimezoneAndDuration(t *testing.T) {
	t.Parallel()

	input := validInput()
	input.Zone = "Mars/Olympus"
	input.Timeout = 0

	err := validator.New("env").Validate(input)

	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))
	require.Len(t, validationErrors, 2)
	require.Equal(t, "TIMEZONE must be an IANA time zone name", validationErrors[0].Message)
	require.Equal(t, "TIMEOUT must be greater than 0", validationErrors[1].Message)
}

func TestValidate_IgnoredTagFallsBackToFieldName(t *testing.T) {
	t.Parallel()

	input := validInput()
	input.Internal = ""

	err := validator.New("env").Validate(input)

	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))
	require.Len(t, validationErrors, 1)
	require.Equal(t, "Internal", validationErrors[0].Field)
}
