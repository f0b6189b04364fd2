package ping

import (
	"activity-partner/internal/global/database"
	"activity-partner/test"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestPing(t *testing.T) {
	(&ModulePing{}).Init()
	database.DB = test.NewDB(t)
	database.RDB = nil
	t.Cleanup(func() { database.RDB = nil })

	resp := test.Do(t, Ping, test.Request{})
	require.Equal(t, int32(200), resp.Code)
	data := resp.Data.(map[string]any)
	require.Equal(t, "pong", data["message"])
	require.Equal(t, "ok", data["mysql"])
	require.Equal(t, "disabled", data["redis"])

	mr := miniredis.RunT(t)
	database.RDB = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	data = test.Do(t, Ping, test.Request{}).Data.(map[string]any)
	require.Equal(t, "ok", data["redis"])

	mr.Close()
	data = test.Do(t, Ping, test.Request{}).Data.(map[string]any)
	require.Equal(t, "error", data["redis"])
}
