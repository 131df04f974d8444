package file

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchRequest_PresenceAndNull(t *testing.T) {
	pid := uuid.New()

	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, r PatchRequest)
	}{
		{
			name: "omitted fields stay unset",
			body: `{"validityHours": 24}`,
			check: func(t *testing.T, r PatchRequest) {
				p := r.ToDomain()
				assert.True(t, p.ValidityHours.Has())
				assert.Equal(t, 24, p.ValidityHours.Value)
				assert.False(t, p.MaxSizeGB.Set)
				assert.False(t, p.IsPremium.Set)
				assert.False(t, p.PaymentID.Set)
			},
		},
		{
			name: "explicit null is present but null",
			body: `{"paymentId": null, "maxSize": null}`,
			check: func(t *testing.T, r PatchRequest) {
				p := r.ToDomain()
				assert.True(t, p.PaymentID.Set)
				assert.True(t, p.PaymentID.Null)
				assert.False(t, p.PaymentID.Has())
				assert.True(t, p.MaxSizeGB.Set)
				assert.False(t, p.MaxSizeGB.Has())
			},
		},
		{
			name: "all values",
			body: `{"maxSize": 10, "validityHours": 72, "isPremium": true, "paymentId": "` + pid.String() + `"}`,
			check: func(t *testing.T, r PatchRequest) {
				p := r.ToDomain()
				assert.Equal(t, 10, p.MaxSizeGB.Value)
				assert.Equal(t, 72, p.ValidityHours.Value)
				assert.True(t, p.IsPremium.Value)
				assert.Equal(t, pid, p.PaymentID.Value)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var r PatchRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &r))
			tt.check(t, r)
		})
	}
}

func TestPatchRequest_WrongType(t *testing.T) {
	var r PatchRequest

	err := json.Unmarshal([]byte(`{"validityHours": "forever"}`), &r)

	assert.Error(t, err)
}
