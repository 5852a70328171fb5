package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFixture(t *testing.T) {
	f, err := DefaultFixture()
	require.NoError(t, err)

	assert.Equal(t, "Product-db", f.Database)
	require.Len(t, f.Collections, 1)
	assert.Equal(t, LevelModerate, f.Collections[0].Modify.ValidationLevel)
	assert.Len(t, f.Products, 3)

	require.Len(t, f.Users, 4)
	assert.Equal(t, "Product-db", f.Users[0].DB)
	assert.Equal(t, "admin", f.Users[3].DB)
	assert.Len(t, f.Users[3].Roles, 3)
}

func TestRunDefaultFixtureTwice(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	f, err := DefaultFixture()
	require.NoError(t, err)

	rep, err := Run(ctx, s, f, nil)
	require.NoError(t, err)
	assert.Equal(t, Report{Collections: 1, Inserted: 3, UsersCreated: 4}, rep)

	rep, err = Run(ctx, s, f, nil)
	require.NoError(t, err)
	assert.Equal(t, Report{Inserted: 3, UsersExisting: 4}, rep)

	docs, err := s.Documents(ctx, "Product-db", "products")
	require.NoError(t, err)
	assert.Len(t, docs, 6)

	ok, err := s.Authenticate(ctx, "admin", "adminMongo", "SuperSecurePassword123")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRunLogsRejectedProducts(t *testing.T) {
	f, err := ParseFixture([]byte(`
database: shop
collections:
  - name: products
    validator:
      $jsonSchema:
        bsonType: object
        required: [nombre]
products:
  - nombre: Lamp
  - precio: 3
  - nombre: Desk
`))
	require.NoError(t, err)

	rep, err := Run(context.Background(), openStore(t), f, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Inserted)
	assert.Equal(t, 1, rep.Rejected)
}

func TestRunRejectsEmptyPropertySchema(t *testing.T) {
	f, err := ParseFixture([]byte(`
database: shop
collections:
  - name: products
    validator:
      $jsonSchema:
        bsonType: object
        properties:
          nombre:
products:
  - nombre: Lamp
`))
	require.NoError(t, err)

	_, err = Run(context.Background(), openStore(t), f, nil)
	assert.ErrorContains(t, err, "$.nombre: empty schema")
}

func TestLoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yml")
	require.NoError(t, os.WriteFile(path, []byte("database: shop\nproducts:\n  - nombre: Lamp\n"), 0o644))

	f, err := LoadFixture(path)
	require.NoError(t, err)
	assert.Equal(t, "shop", f.Database)
	require.Len(t, f.Collections, 1, "products imply a products collection")
	assert.Nil(t, f.Collections[0].Validator)

	_, err = LoadFixture(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	_, err = ParseFixture([]byte("products: []\n"))
	assert.ErrorContains(t, err, "database is required")
}
