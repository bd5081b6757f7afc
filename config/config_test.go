package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetString(t *testing.T) {
	c := map[string]string{"PORT": "9090", "EMPTY": ""}

	assert.Equal(t, "9090", GetString(c, "PORT", "8080"))
	assert.Equal(t, "", GetString(c, "EMPTY", "8080"))
	assert.Equal(t, "8080", GetString(c, "MISSING", "8080"))
	assert.Equal(t, "8080", GetString(nil, "PORT", "8080"))
}

func TestGetInt(t *testing.T) {
	c := map[string]string{"TIMEOUT": "30", "BAD": "thirty"}

	assert.Equal(t, 30, GetInt(c, "TIMEOUT", 10))
	assert.Equal(t, 10, GetInt(c, "BAD", 10))
	assert.Equal(t, 10, GetInt(c, "MISSING", 10))
}

func TestGetStringSlice(t *testing.T) {
	c := map[string]string{
		"HOSTS":  "cdn.example.com, images.example.org ,",
		"BLANK":  "",
		"COMMAS": ", ,",
	}

	assert.Equal(t, []string{"cdn.example.com", "images.example.org"}, GetStringSlice(c, "HOSTS", nil))
	assert.Equal(t, []string{"fallback"}, GetStringSlice(c, "BLANK", []string{"fallback"}))
	assert.Equal(t, []string{"fallback"}, GetStringSlice(c, "COMMAS", []string{"fallback"}))
	assert.Nil(t, GetStringSlice(c, "MISSING", nil))
}
