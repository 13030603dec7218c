package state

import (
	"fmt"
	"log/slog"

	"github.com/tomyedwab/conndesk/database"
)

// Connection is a saved connection target shown in the sidebar of the
// desktop app.
type Connection struct {
	ID    int64  `db:"id" json:"id"`
	URI   string `db:"uri" json:"uri"`
	Name  string `db:"name" json:"name"`
	Color string `db:"color" json:"color"`
}

func (Connection) TableName() string {
	return "connections"
}

func (Connection) Columns() []database.Column {
	return []database.Column{
		{Name: "uri", Type: "TEXT NOT NULL"},
		{Name: "name", Type: "TEXT NOT NULL"},
		{Name: "color", Type: "TEXT NOT NULL"},
	}
}

func (c Connection) GetID() int64 {
	return c.ID
}

// Connections implements the connection commands on top of a shared
// database. It holds no state of its own and may be used concurrently.
type Connections struct {
	db *database.Database
}

func NewConnections(db *database.Database) *Connections {
	return &Connections{db: db}
}

// Init creates the connections table if needed.
func (c *Connections) Init() error {
	return database.InitTable[Connection](c.db)
}

func (c *Connections) CreateConnection(uri, name, color string) (int64, error) {
	id, err := database.Insert(c.db, Connection{
		URI:   uri,
		Name:  name,
		Color: color,
	})
	if err != nil {
		return 0, err
	}
	slog.Debug("Created connection", "id", id, "name", name)
	return id, nil
}

// GetConnection returns nil with a nil error when no connection has the id.
func (c *Connections) GetConnection(id int64) (*Connection, error) {
	conn, found, err := database.GetByID[Connection](c.db, id)
	if err != nil || !found {
		return nil, err
	}
	return &conn, nil
}

// UpdateConnection replaces every field of the stored connection with the
// same id. A connection that was never saved (id 0) is rejected.
func (c *Connections) UpdateConnection(conn Connection) error {
	if conn.ID <= 0 {
		return database.NewValidationError(fmt.Sprintf("connection %q has not been saved (id %d)", conn.Name, conn.ID))
	}
	if err := database.Update(c.db, conn); err != nil {
		return err
	}
	slog.Debug("Updated connection", "id", conn.ID)
	return nil
}

func (c *Connections) DeleteConnection(id int64) error {
	if err := database.Delete[Connection](c.db, id); err != nil {
		return err
	}
	slog.Debug("Deleted connection", "id", id)
	return nil
}

func (c *Connections) ListConnections() ([]Connection, error) {
	return database.List[Connection](c.db)
}
