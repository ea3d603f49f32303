package pb

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtoMatchesServiceDesc(t *testing.T) {
	raw, err := os.ReadFile(DeliveryService_ServiceDesc.Metadata.(string))
	require.NoError(t, err)
	proto := string(raw)

	assert.Equal(t, "delivery.v1.DeliveryService", DeliveryService_ServiceDesc.ServiceName)
	assert.Contains(t, proto, "package delivery.v1;")
	assert.Contains(t, proto, "service DeliveryService {")

	assert.Equal(t, len(DeliveryService_ServiceDesc.Methods), strings.Count(proto, "  rpc "))
	for _, m := range DeliveryService_ServiceDesc.Methods {
		assert.Contains(t, proto, "rpc "+m.MethodName+"(", m.MethodName)
	}
}

func TestCodecUsesProtoJSONNames(t *testing.T) {
	data, err := Codec{}.Marshal(&RoleResponse{Identity: "pizza-shop", Role: "restaurant", Code: 2, Name: "Pizza Shop"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"identity":"pizza-shop","role":"restaurant","code":2,"name":"Pizza Shop"}`, string(data))

	var order OrderResponse
	require.NoError(t, Codec{}.Unmarshal([]byte(`{"id":3,"food_id":1,"escrowed_amount":4,"status_code":1}`), &order))
	assert.Equal(t, uint64(3), order.Id)
	assert.Equal(t, uint64(1), order.FoodId)
	assert.Equal(t, uint64(4), order.EscrowedAmount)
	assert.Equal(t, int32(1), order.StatusCode)
}
