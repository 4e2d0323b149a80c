package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, logrus.WarnLevel, ParseLevel(" warning "))
	assert.Equal(t, logrus.InfoLevel, ParseLevel("loud"))
}

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(&buf, "info", "json")
	t.Cleanup(func() { Setup(nil, "info", "text") })

	logger.WithField("reservation_id", 7).Info("reservation created")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "reservation created", entry["msg"])
	assert.EqualValues(t, 7, entry["reservation_id"])
}
