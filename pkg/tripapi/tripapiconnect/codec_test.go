package tripapiconnect

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pb "github.com/mmynk/tripsplit/pkg/tripapi"
)

func TestJSONCodec_AmountsAreStrings(t *testing.T) {
	codec := jsonCodec{}
	assert.Equal(t, "json", codec.Name())

	data, err := codec.Marshal(&pb.Transfer{From: "Bob", To: "Alice", Amount: decimal.RequireFromString("33.30")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"Bob","to":"Alice","amount":"33.3"}`, string(data))
}

func TestJSONCodec_Unmarshal(t *testing.T) {
	codec := jsonCodec{}

	var req pb.CreateExpenseRequest
	require.NoError(t, codec.Unmarshal([]byte(`{"trip_id":"t1","amount":12.5,"payer":"Alice","participants":["Alice","Bob"]}`), &req))
	assert.Equal(t, "t1", req.TripId)
	assert.True(t, decimal.RequireFromString("12.5").Equal(req.Amount))
	assert.Equal(t, []string{"Alice", "Bob"}, req.Participants)

	var empty pb.ListCategoriesRequest
	require.NoError(t, codec.Unmarshal(nil, &empty))

	err := codec.Unmarshal([]byte(`{"trip_id":`), &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CreateExpenseRequest")
}
