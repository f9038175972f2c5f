package endpoints

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/fetchkit/packages/client"
)

const sampleFile = `
endpoints:
  - name: listUsers
    method: GET
    path: /users
    description: List all users
    params:
      limit: "20"
  - name: createUser
    method: POST
    path: /users
    successMsg: User created
    errorMsg: Could not create user
`

func TestParse(t *testing.T) {
	set, err := Parse([]byte(sampleFile))
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())

	def, ok := set.Get("listUsers")
	require.True(t, ok)
	assert.Equal(t, "GET", def.Method)
	assert.Equal(t, "/users", def.Path)
	assert.Equal(t, "20", def.Params["limit"])

	create, _ := set.Get("createUser")
	require.NotNil(t, create.SuccessMsg)
	assert.Equal(t, "User created", *create.SuccessMsg)

	all := set.All()
	assert.Equal(t, "listUsers", all[0].Name)
	assert.Equal(t, "createUser", all[1].Name)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "endpoints: []", "no endpoints"},
		{"missing name", "endpoints:\n  - method: GET\n    path: /x", "missing name"},
		{"bad method", "endpoints:\n  - name: a\n    method: PATCH\n    path: /x", "unsupported method"},
		{"relative path", "endpoints:\n  - name: a\n    method: GET\n    path: x", "must start with /"},
		{"duplicate", "endpoints:\n  - name: a\n    method: GET\n    path: /x\n  - name: a\n    method: GET\n    path: /y", "duplicate"},
		{"not yaml", "{{nope", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateFile(t *testing.T) {
	problems, err := ValidateFile([]byte(sampleFile))
	require.NoError(t, err)
	assert.Empty(t, problems)

	problems, err = ValidateFile([]byte("endpoints:\n  - name: a\n    method: TRACE\n    path: /x"))
	require.NoError(t, err)
	assert.NotEmpty(t, problems)
}

func TestSet_Invoke(t *testing.T) {
	var gotPath, gotQuery, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	set, err := Parse([]byte(sampleFile))
	require.NoError(t, err)
	c := client.New(server.URL)

	t.Run("GET merges default and explicit params", func(t *testing.T) {
		extra := client.NewParams().Set("page", "3")
		body, err := set.Invoke(context.Background(), c, "listUsers", extra, nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"ok": true}, body)
		assert.Equal(t, "/users", gotPath)
		assert.Contains(t, gotQuery, "limit=20")
		assert.Contains(t, gotQuery, "page=3")
	})

	t.Run("POST sends JSON body", func(t *testing.T) {
		params := client.NewParams().Set("name", "ada")
		_, err := set.Invoke(context.Background(), c, "createUser", params, &client.Options{PropagateError: true})
		require.NoError(t, err)
		assert.Equal(t, `{"name":"ada"}`, gotBody)
	})

	t.Run("unknown endpoint", func(t *testing.T) {
		_, err := set.Invoke(context.Background(), c, "nope", nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown endpoint")
	})
}
