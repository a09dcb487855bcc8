package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ads-manager-server/internal/observability"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	clientsCollection   = "clients"
	operatorsCollection = "operators"
)

var (
	ErrClientNotFound   = errors.New("client not found")
	ErrOperatorNotFound = errors.New("operator not found")
)

// Store persists agency clients and operators in Firestore. Writes are
// full-document replacements; the sync pipeline always supplies a complete
// Client value.
type Store struct {
	fs     *firestore.Client
	logger *observability.Logger
}

// New connects to Firestore. credentialsFile may be empty, in which case
// application default credentials are used.
func New(ctx context.Context, projectID, credentialsFile string, logger *observability.Logger) (Store, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	fs, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return Store{}, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return Store{fs: fs, logger: logger}, nil
}

// Close releases the underlying Firestore connection.
func (s Store) Close() error {
	return s.fs.Close()
}

// GetClient loads a single client document by id.
func (s Store) GetClient(ctx context.Context, id string) (Client, error) {
	doc, err := s.fs.Collection(clientsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return Client{}, ErrClientNotFound
		}
		s.logger.Error(ctx, "failed to get client document", err)
		return Client{}, fmt.Errorf("failed to get client %s: %w", id, err)
	}
	return clientFromDoc(doc.Data())
}

// ListClients returns all client documents ordered by name.
func (s Store) ListClients(ctx context.Context) ([]Client, error) {
	docs, err := s.fs.Collection(clientsCollection).OrderBy("name", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		s.logger.Error(ctx, "failed to list client documents", err)
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	clients := make([]Client, 0, len(docs))
	for _, doc := range docs {
		c, err := clientFromDoc(doc.Data())
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, nil
}

// UpsertClient writes the full client document, replacing any previous value.
// The value is sanitized so unset optional fields are absent rather than null.
func (s Store) UpsertClient(ctx context.Context, client Client) error {
	data, err := clientToDoc(client)
	if err != nil {
		return err
	}
	if _, err := s.fs.Collection(clientsCollection).Doc(client.ID).Set(ctx, data); err != nil {
		s.logger.Error(ctx, "failed to upsert client document", err)
		return fmt.Errorf("failed to upsert client %s: %w", client.ID, err)
	}
	return nil
}

// DeleteClient removes a client document. Deleting a missing document is not
// an error in Firestore, which matches the idempotent UI delete.
func (s Store) DeleteClient(ctx context.Context, id string) error {
	if _, err := s.fs.Collection(clientsCollection).Doc(id).Delete(ctx); err != nil {
		s.logger.Error(ctx, "failed to delete client document", err)
		return fmt.Errorf("failed to delete client %s: %w", id, err)
	}
	return nil
}

// GetOperatorByEmail looks up a dashboard operator for login.
func (s Store) GetOperatorByEmail(ctx context.Context, email string) (Operator, error) {
	docs, err := s.fs.Collection(operatorsCollection).
		Where("email", "==", email).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		s.logger.Error(ctx, "failed to query operator", err)
		return Operator{}, fmt.Errorf("failed to query operator: %w", err)
	}
	if len(docs) == 0 {
		return Operator{}, ErrOperatorNotFound
	}
	var op Operator
	if err := remarshal(docs[0].Data(), &op); err != nil {
		return Operator{}, err
	}
	return op, nil
}

// clientToDoc converts a Client into a sanitized generic document value.
// The JSON round trip applies the model's field names and omitempty rules.
func clientToDoc(client Client) (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := remarshal(client, &data); err != nil {
		return nil, err
	}
	sanitized, ok := Sanitize(data).(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("client %s did not sanitize to a document", client.ID)
	}
	return sanitized, nil
}

func clientFromDoc(data map[string]interface{}) (Client, error) {
	var c Client
	if err := remarshal(data, &c); err != nil {
		return Client{}, err
	}
	return c, nil
}

func remarshal(in, out interface{}) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}
