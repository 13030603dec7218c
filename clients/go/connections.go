package conndeskgo

import "context"

// Connection mirrors the record stored by the server.
type Connection struct {
	ID    int64  `json:"id"`
	URI   string `json:"uri"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CreateConnection saves a new connection and returns its id.
func (c *Client) CreateConnection(ctx context.Context, uri, name, color string) (int64, error) {
	var resp struct {
		ID int64 `json:"id"`
	}
	err := c.call(ctx, "/api/create_connection", map[string]string{
		"uri":   uri,
		"name":  name,
		"color": color,
	}, &resp)
	return resp.ID, err
}

// GetConnection returns nil with a nil error when the connection does not
// exist.
func (c *Client) GetConnection(ctx context.Context, id int64) (*Connection, error) {
	var conn *Connection
	if err := c.call(ctx, "/api/get_connection", map[string]int64{"id": id}, &conn); err != nil {
		return nil, err
	}
	return conn, nil
}

// UpdateConnection replaces every field of the connection with conn.ID.
func (c *Client) UpdateConnection(ctx context.Context, conn Connection) error {
	return c.call(ctx, "/api/update_connection", map[string]Connection{"entity": conn}, nil)
}

func (c *Client) DeleteConnection(ctx context.Context, id int64) error {
	return c.call(ctx, "/api/delete_connection", map[string]int64{"id": id}, nil)
}

func (c *Client) ListConnections(ctx context.Context) ([]Connection, error) {
	conns := []Connection{}
	if err := c.call(ctx, "/api/list_connection", struct{}{}, &conns); err != nil {
		return nil, err
	}
	return conns, nil
}
