package booking

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shootdesk/shootdesk-api/internal/pkg/validator"
)

func decodeRequest(t *testing.T, body string) *CreateBookingRequest {
	t.Helper()
	var req CreateBookingRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return &req
}

func errorPaths(errs []validator.FieldError) []string {
	paths := make([]string, len(errs))
	for i, e := range errs {
		paths[i] = e.Path
	}
	return paths
}

func TestCreateBookingRequestValid(t *testing.T) {
	req := decodeRequest(t, `{
		"bookingName": "Smith Wedding", "bookingType": "wedding", "packageType": "gold", "packageCost": 5000,
		"participants": [{"name": "A", "role": "bride", "metadata": {"side": "left"}}],
		"deliverables": [{"title": "Album", "cost": 200, "quantity": "3"}]
	}`)

	assert.Nil(t, validator.Validate(req))
	assert.Equal(t, int64(3), req.Deliverables[0].Quantity.Int64())
	assert.Nil(t, req.Shoots)
	assert.Equal(t, `{"side": "left"}`, req.Participants[0].metadataValue().String)
}

func TestCreateBookingRequestFieldPaths(t *testing.T) {
	req := decodeRequest(t, `{
		"bookingName": "", "bookingType": "wedding", "packageType": "gold", "packageCost": -1,
		"participants": [{"name": "A", "role": "", "email": "nope"}],
		"shoots": [{"title": "Ceremony", "date": "2025-06-01", "time": "10:00", "crews": ["7", "abc"]}],
		"deliverables": [{"title": "Album", "quantity": "0"}],
		"payments": [{"amount": 0, "date": "2025-06-01"}],
		"scheduledPayments": [{"amount": 100, "dueDate": "06/01/2025"}]
	}`)

	paths := errorPaths(validator.Validate(req))
	assert.ElementsMatch(t, []string{
		"bookingName",
		"packageCost",
		"participants[0].email",
		"participants[0].role",
		"shoots[0].crews[1]",
		"deliverables[0].quantity",
		"payments[0].amount",
		"scheduledPayments[0].dueDate",
	}, paths)
}

func TestCreateBookingRequestRejectsOutOfRangeCrewID(t *testing.T) {
	req := decodeRequest(t, `{
		"bookingName": "Smith Wedding", "bookingType": "wedding", "packageType": "gold", "packageCost": 5000,
		"participants": [{"name": "A", "role": "bride"}],
		"shoots": [{"title": "Ceremony", "date": "2025-06-01", "time": "10:00", "crews": ["99999999999999999999"]}]
	}`)

	errs := validator.Validate(req)
	require.Len(t, errs, 1)
	assert.Equal(t, "shoots[0].crews[0]", errs[0].Path)
	assert.Equal(t, "Invalid identifier", errs[0].Message)
}

func TestCreateBookingRequestRequiresParticipants(t *testing.T) {
	req := decodeRequest(t, `{"bookingName": "X", "bookingType": "t", "packageType": "p", "participants": []}`)
	assert.Equal(t, []string{"participants"}, errorPaths(validator.Validate(req)))
}

func TestMetadataNull(t *testing.T) {
	p := ParticipantInput{Metadata: json.RawMessage("null")}
	assert.False(t, p.metadataValue().Valid)
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, pageCount(0, 10))
	assert.Equal(t, 1, pageCount(10, 10))
	assert.Equal(t, 2, pageCount(11, 10))
}
