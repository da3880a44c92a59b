package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		errMsg  string
		wantErr bool
	}{
		{name: "simple", input: "Alice"},
		{name: "with space", input: "Alice Smith"},
		{name: "cyrillic", input: "Алиса"},
		{name: "max length", input: strings.Repeat("я", MaxNameLen)},
		{name: "empty", input: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "only spaces", input: "   ", wantErr: true, errMsg: "cannot be empty"},
		{name: "too long", input: strings.Repeat("a", MaxNameLen+1), wantErr: true, errMsg: "must not exceed 64"},
		{name: "control char", input: "bob\n", wantErr: true, errMsg: "non-printable"},
		{name: "tab", input: "a\tb", wantErr: true, errMsg: "non-printable"},
		{name: "invalid utf8", input: "\xff\xfe", wantErr: true, errMsg: "valid UTF-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "  Alice ", want: "Alice"},
		{input: "e\u0301", want: "\u00e9"},
		{input: "Ёлка", want: "Ёлка"},
		{input: "", want: ""},
	}

	for _, tt := range tests {
		got := NormalizeName(tt.input)
		assert.Equal(t, tt.want, got)
		assert.NoError(t, ValidateName(got+"x"))
	}
}

func TestValidateAge(t *testing.T) {
	for _, age := range []int{0, 1, 30, MaxAge} {
		assert.NoError(t, ValidateAge(age), "age %d", age)
	}
	for _, age := range []int{-1, MaxAge + 1, 1000} {
		assert.Error(t, ValidateAge(age), "age %d", age)
	}
}

func TestValidateUser(t *testing.T) {
	assert.NoError(t, ValidateUser("Bob", 40))
	assert.ErrorContains(t, ValidateUser("", 40), "name")
	assert.ErrorContains(t, ValidateUser("Bob", -5), "age")
}

func TestParseAge(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "30", want: 30},
		{input: " 7 ", want: 7},
		{input: "abc", wantErr: true},
		{input: "", wantErr: true},
		{input: "-3", wantErr: true},
		{input: "151", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAge(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	id, err = ParseID("-1")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), id)

	_, err = ParseID("x1")
	assert.ErrorContains(t, err, "must be an integer")
}
