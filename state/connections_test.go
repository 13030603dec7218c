package state

import (
	"fmt"
	"path"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomyedwab/conndesk/database"
)

func setupConnections(t *testing.T) (*Connections, *database.Database) {
	t.Helper()
	db, err := database.Open(path.Join(t.TempDir(), "connections.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	conns := NewConnections(db)
	require.NoError(t, conns.Init())
	return conns, db
}

func TestCreateAndGetConnection(t *testing.T) {
	conns, _ := setupConnections(t)

	id, err := conns.CreateConnection("x", "y", "z")
	require.NoError(t, err)
	require.Greater(t, id, int64(0))

	conn, err := conns.GetConnection(id)
	require.NoError(t, err)
	require.NotNil(t, conn)
	assert.Equal(t, Connection{ID: id, URI: "x", Name: "y", Color: "z"}, *conn)
}

func TestInitTwiceKeepsRows(t *testing.T) {
	conns, _ := setupConnections(t)

	_, err := conns.CreateConnection("mongodb://localhost:27017", "local", "#ff0000")
	require.NoError(t, err)

	require.NoError(t, conns.Init())
	require.NoError(t, conns.Init())

	all, err := conns.ListConnections()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGetMissingConnection(t *testing.T) {
	conns, _ := setupConnections(t)

	for _, id := range []int64{0, -1, 7} {
		conn, err := conns.GetConnection(id)
		assert.NoError(t, err)
		assert.Nil(t, conn)
	}
}

func TestDeleteConnection(t *testing.T) {
	conns, _ := setupConnections(t)

	id, err := conns.CreateConnection("postgres://db", "db", "blue")
	require.NoError(t, err)

	require.NoError(t, conns.DeleteConnection(id))

	conn, err := conns.GetConnection(id)
	require.NoError(t, err)
	assert.Nil(t, conn)

	assert.NoError(t, conns.DeleteConnection(id))
	assert.NoError(t, conns.DeleteConnection(0))
}

func TestUpdateConnection(t *testing.T) {
	conns, _ := setupConnections(t)

	id, err := conns.CreateConnection("redis://a", "a", "red")
	require.NoError(t, err)

	err = conns.UpdateConnection(Connection{ID: id, URI: "redis://b", Name: "b", Color: ""})
	require.NoError(t, err)

	conn, err := conns.GetConnection(id)
	require.NoError(t, err)
	require.NotNil(t, conn)
	assert.Equal(t, Connection{ID: id, URI: "redis://b", Name: "b", Color: ""}, *conn)
}

func TestUpdateUnknownConnection(t *testing.T) {
	conns, _ := setupConnections(t)

	err := conns.UpdateConnection(Connection{ID: 55, URI: "u", Name: "n", Color: "c"})
	require.Error(t, err)
	assert.True(t, database.IsNotFoundError(err))

	err = conns.UpdateConnection(Connection{URI: "u", Name: "n", Color: "c"})
	require.Error(t, err)
	assert.True(t, database.IsValidationError(err))

	all, err := conns.ListConnections()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestListConnections(t *testing.T) {
	conns, _ := setupConnections(t)

	ids := map[int64]string{}
	for _, name := range []string{"one", "two", "three"} {
		id, err := conns.CreateConnection("uri://"+name, name, "")
		require.NoError(t, err)
		ids[id] = name
	}

	all, err := conns.ListConnections()
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, conn := range all {
		assert.Equal(t, ids[conn.ID], conn.Name)
		assert.Equal(t, "uri://"+conn.Name, conn.URI)
	}
}

func TestConnectionTableDescription(t *testing.T) {
	_, db := setupConnections(t)

	var tableName string
	err := db.GetDB().Get(&tableName, "SELECT name FROM sqlite_master WHERE type='table' AND name='connections'")
	require.NoError(t, err)
	assert.Equal(t, "connections", tableName)
}

func TestConcurrentCommands(t *testing.T) {
	conns, _ := setupConnections(t)

	const workers = 50
	ids := make([]int64, workers)
	errs := make(chan error, workers*3)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := conns.CreateConnection(fmt.Sprintf("uri-%d", i), fmt.Sprintf("conn-%d", i), "blue")
			if err != nil {
				errs <- err
				return
			}
			ids[i] = id
			if err := conns.UpdateConnection(Connection{ID: id, URI: fmt.Sprintf("uri-%d", i), Name: fmt.Sprintf("conn-%d", i), Color: "green"}); err != nil {
				errs <- err
			}
			if _, err := conns.ListConnections(); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	seen := make(map[int64]bool, workers)
	for _, id := range ids {
		require.Greater(t, id, int64(0))
		seen[id] = true
	}
	assert.Len(t, seen, workers)

	all, err := conns.ListConnections()
	require.NoError(t, err)
	require.Len(t, all, workers)
	for _, conn := range all {
		assert.True(t, seen[conn.ID])
		assert.Equal(t, "green", conn.Color)
	}
}
