package moderation

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lobby-service/internal/utils"
	"testing"
	"time"
)

func TestParsePunishmentType(t *testing.T) {
	got, err := ParsePunishmentType(" ban ")
	require.NoError(t, err)
	assert.Equal(t, TypeBan, got)

	_, err = ParsePunishmentType("jail")
	assert.Error(t, err)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{input: "30s", want: 30 * time.Second},
		{input: "30m", want: 30 * time.Minute},
		{input: "2h", want: 2 * time.Hour},
		{input: "1d", want: 24 * time.Hour},
		{input: "1w", want: 7 * 24 * time.Hour},
		{input: "2h30m", want: 2*time.Hour + 30*time.Minute},
		{input: "1D12H", want: 36 * time.Hour},
		{input: "", wantErr: true},
		{input: "10", wantErr: true},
		{input: "d", wantErr: true},
		{input: "5y", wantErr: true},
		{input: "0m", wantErr: true},
		{input: "-5m", wantErr: true},
		{input: "99999999999999w", wantErr: true},
		{input: "9223372036s", want: 9223372036 * time.Second},
		{input: "15000w15000w", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPunishmentRequest_IsPermanent(t *testing.T) {
	assert.True(t, PunishmentRequest{Type: TypeBan}.IsPermanent())
	assert.False(t, PunishmentRequest{Type: TypeBan, Duration: utils.PointerOf("1d")}.IsPermanent())
	assert.False(t, PunishmentRequest{Type: TypeMute, Duration: utils.PointerOf("1h")}.IsPermanent())
	assert.True(t, PunishmentRequest{Type: TypeKick, Duration: utils.PointerOf("1d")}.IsPermanent())
	assert.True(t, PunishmentRequest{Type: TypeBlacklist, Duration: utils.PointerOf("1d")}.IsPermanent())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		failure Failure
		want    Hint
	}{
		{name: "status 404", failure: Failure{Message: "no", StatusCode: 404}, want: HintTargetNotFound},
		{name: "message 404", failure: Failure{Message: "error 404"}, want: HintTargetNotFound},
		{name: "message not found", failure: Failure{Message: "Player Not Found"}, want: HintTargetNotFound},
		{name: "status 503", failure: Failure{Message: "busy", StatusCode: 503}, want: HintServiceUnavailable},
		{name: "message unavailable", failure: Failure{Message: "Service unavailable"}, want: HintServiceUnavailable},
		{name: "other", failure: Failure{Message: "already banned", StatusCode: 409}, want: HintNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.failure)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want == HintNone, got.Advice() == "")
		})
	}
}

func TestFailure_Error(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	f := Failure{Message: "Service unavailable", Cause: cause}

	assert.Equal(t, "Service unavailable: dial tcp: refused", f.Error())
	assert.ErrorIs(t, f, cause)
	assert.Equal(t, "plain", Failure{Message: "plain"}.Error())
}
