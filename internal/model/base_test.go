package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataJSON(t *testing.T) {
	b, err := json.Marshal(NovaData(1990, time.March, 10))
	require.NoError(t, err)
	assert.Equal(t, `"1990-03-10"`, string(b))

	var d Data
	require.NoError(t, json.Unmarshal([]byte(`"2020-12-01"`), &d))
	assert.Equal(t, 2020, d.Year())

	// zero value serializes as null
	b, err = json.Marshal(Data{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}

func TestDataJSONInvalida(t *testing.T) {
	var d Data
	err := json.Unmarshal([]byte(`"10/03/1990"`), &d)
	assert.Error(t, err)
}
