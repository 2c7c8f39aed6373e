package queue

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEvent(t *testing.T) {
	body, err := json.Marshal(ScheduleEvent{
		Type:           EventShowChanged,
		ShowID:         "new",
		ReplacedShowID: "old",
		RoomID:         "r1",
		RoomName:       "Blue",
		MovieTitle:     "Heat",
		StartsAt:       "2024-03-14T20:00:00Z",
		EndsAt:         "2024-03-14T22:50:00Z",
		OccurredAt:     "2024-03-01T10:00:00Z",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeEvent(&buf, body))

	assert.Equal(t,
		`[2024-03-01T10:00:00Z] show.changed | show_id=new | replaced_show_id=old | room="Blue" | movie="Heat" | starts_at=2024-03-14T20:00:00Z | ends_at=2024-03-14T22:50:00Z`+"\n",
		buf.String())
}

func TestWriteEvent_CancelledWithoutDetails(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeEvent(&buf, []byte(`{"type":"show.cancelled","show_id":"x","occurred_at":"t"}`)))
	assert.Equal(t, "[t] show.cancelled | show_id=x\n", buf.String())
}

func TestWriteEvent_Rejects(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, writeEvent(&buf, []byte(`not json`)))
	assert.Error(t, writeEvent(&buf, []byte(`{"type":"show.scheduled"}`)))
	assert.Empty(t, buf.String())
}
