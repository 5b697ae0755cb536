package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/natakamm/My-Art-Gallery-BE/auth"
	"github.com/natakamm/My-Art-Gallery-BE/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserHandlerForTest(users *fakeUserStore) userHandler {
	return newUserHandler(users, auth.NewTokenService("test-secret"), newFakeBlobStore())
}

func signupBody(email, password, username string) *bytes.Buffer {
	body, _ := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
		"username": username,
	})
	return bytes.NewBuffer(body)
}

func TestSignup(t *testing.T) {
	t.Run("creates account and issues token", func(t *testing.T) {
		users := newFakeUserStore()
		h := newUserHandlerForTest(users)

		r := httptest.NewRequest(http.MethodPost, "/user/signup",
			signupBody("nata@example.com", "Sunflower1!", "nata"))
		w := serve(h.signup(), r, nil)

		require.Equal(t, http.StatusOK, w.Code)

		var resp sessionResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, "nata", resp.Username)
		assert.NotEmpty(t, resp.Token)

		require.Len(t, users.users, 1)
		created := users.users[0]
		assert.True(t, created.IsActive)
		assert.Equal(t, models.DefaultAvatar, created.Avatar)
		assert.NotEqual(t, "Sunflower1!", created.PasswordHash, "plaintext must not be stored")
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		h := newUserHandlerForTest(newFakeUserStore())

		r := httptest.NewRequest(http.MethodPost, "/user/signup",
			signupBody("nata@example.com", "", "nata"))
		w := serve(h.signup(), r, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		h := newUserHandlerForTest(newFakeUserStore())

		r := httptest.NewRequest(http.MethodPost, "/user/signup",
			signupBody("not-an-email", "Sunflower1!", "nata"))
		w := serve(h.signup(), r, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		h := newUserHandlerForTest(newFakeUserStore())

		r := httptest.NewRequest(http.MethodPost, "/user/signup",
			signupBody("nata@example.com", "weakpass", "nata"))
		w := serve(h.signup(), r, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects email held by an active account", func(t *testing.T) {
		existing := activeUser("taken")
		existing.Email = "taken@example.com"
		h := newUserHandlerForTest(newFakeUserStore(existing))

		r := httptest.NewRequest(http.MethodPost, "/user/signup",
			signupBody("taken@example.com", "Sunflower1!", "nata"))
		w := serve(h.signup(), r, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Email already in use.")
	})

	t.Run("rejects username held by an active account", func(t *testing.T) {
		h := newUserHandlerForTest(newFakeUserStore(activeUser("nata")))

		r := httptest.NewRequest(http.MethodPost, "/user/signup",
			signupBody("fresh@example.com", "Sunflower1!", "nata"))
		w := serve(h.signup(), r, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Username is already taken.")
	})

	t.Run("deactivated account frees its email and username", func(t *testing.T) {
		gone := activeUser("nata")
		gone.IsActive = false
		users := newFakeUserStore(gone)
		h := newUserHandlerForTest(users)

		r := httptest.NewRequest(http.MethodPost, "/user/signup",
			signupBody(gone.Email, "Sunflower1!", "nata"))
		w := serve(h.signup(), r, nil)

		// Uniqueness is scoped to active rows, so the insert itself must
		// succeed and both records coexist.
		assert.Equal(t, http.StatusOK, w.Code)
		require.Len(t, users.users, 2)
		assert.Equal(t, users.users[0].Email, users.users[1].Email)
		assert.False(t, users.users[0].IsActive)
		assert.True(t, users.users[1].IsActive)
	})
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("Sunflower1!")
	require.NoError(t, err)

	user := activeUser("nata")
	user.PasswordHash = hash

	loginBody := func(identifier, password string) *bytes.Buffer {
		body, _ := json.Marshal(map[string]string{"identifier": identifier, "password": password})
		return bytes.NewBuffer(body)
	}

	t.Run("accepts username or email", func(t *testing.T) {
		h := newUserHandlerForTest(newFakeUserStore(user))

		for _, identifier := range []string{user.Username, user.Email} {
			r := httptest.NewRequest(http.MethodPost, "/user/login", loginBody(identifier, "Sunflower1!"))
			w := serve(h.login(), r, nil)

			require.Equal(t, http.StatusOK, w.Code, "identifier %q", identifier)

			var resp sessionResponse
			decodeBody(t, w, &resp)
			assert.Equal(t, "nata", resp.Username)
			assert.NotEmpty(t, resp.Token)
		}
	})

	t.Run("rejects unknown identifier", func(t *testing.T) {
		h := newUserHandlerForTest(newFakeUserStore(user))

		r := httptest.NewRequest(http.MethodPost, "/user/login", loginBody("nobody", "Sunflower1!"))
		w := serve(h.login(), r, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		h := newUserHandlerForTest(newFakeUserStore(user))

		r := httptest.NewRequest(http.MethodPost, "/user/login", loginBody("nata", "WrongPass1!"))
		w := serve(h.login(), r, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects deactivated account", func(t *testing.T) {
		gone := activeUser("gone")
		gone.PasswordHash = hash
		gone.IsActive = false
		h := newUserHandlerForTest(newFakeUserStore(gone))

		r := httptest.NewRequest(http.MethodPost, "/user/login", loginBody("gone", "Sunflower1!"))
		w := serve(h.login(), r, nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetAllUsers(t *testing.T) {
	t.Run("404 when nobody is active", func(t *testing.T) {
		gone := activeUser("gone")
		gone.IsActive = false
		h := newUserHandlerForTest(newFakeUserStore(gone))

		w := serve(h.getAllUsers(), httptest.NewRequest(http.MethodGet, "/user/all", nil), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "No users found.")
	})

	t.Run("lists active users", func(t *testing.T) {
		h := newUserHandlerForTest(newFakeUserStore(activeUser("a"), activeUser("b")))

		w := serve(h.getAllUsers(), httptest.NewRequest(http.MethodGet, "/user/all", nil), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var listed []models.User
		decodeBody(t, w, &listed)
		assert.Len(t, listed, 2)
	})
}

func TestGetOtherUser(t *testing.T) {
	user := activeUser("nata")
	gone := activeUser("gone")
	gone.IsActive = false
	h := newUserHandlerForTest(newFakeUserStore(user, gone))

	t.Run("returns active profile", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/user/"+user.ID.String(), nil)
		w := serve(h.getOtherUser(), r, map[string]string{"userID": user.ID.String()})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("deactivated profile reads as absent", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/user/"+gone.ID.String(), nil)
		w := serve(h.getOtherUser(), r, map[string]string{"userID": gone.ID.String()})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEditDetails(t *testing.T) {
	t.Run("updates provided fields only", func(t *testing.T) {
		user := activeUser("nata")
		h := newUserHandlerForTest(newFakeUserStore(user))

		body := strings.NewReader(`{"username":"nata2","location":"Berlin"}`)
		r := authed(httptest.NewRequest(http.MethodPut, "/user/profile/details", body), user.ID)
		w := serve(h.editDetails(), r, nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "nata2", user.Username)
		require.NotNil(t, user.Location)
		assert.Equal(t, "Berlin", *user.Location)
	})

	t.Run("rejects email belonging to another active user", func(t *testing.T) {
		user := activeUser("nata")
		other := activeUser("other")
		h := newUserHandlerForTest(newFakeUserStore(user, other))

		body := strings.NewReader(`{"email":"` + other.Email + `"}`)
		r := authed(httptest.NewRequest(http.MethodPut, "/user/profile/details", body), user.ID)
		w := serve(h.editDetails(), r, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("keeping your own email is not a conflict", func(t *testing.T) {
		user := activeUser("nata")
		h := newUserHandlerForTest(newFakeUserStore(user))

		body := strings.NewReader(`{"email":"` + user.Email + `"}`)
		r := authed(httptest.NewRequest(http.MethodPut, "/user/profile/details", body), user.ID)
		w := serve(h.editDetails(), r, nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestDeleteAccount(t *testing.T) {
	user := activeUser("nata")
	users := newFakeUserStore(user)
	h := newUserHandlerForTest(users)

	r := authed(httptest.NewRequest(http.MethodDelete, "/user/delete-account", nil), user.ID)
	w := serve(h.deleteAccount(), r, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, user.IsActive, "account must be soft-deleted, not removed")
	assert.Len(t, users.users, 1, "record must survive deactivation")
}

func TestFollow(t *testing.T) {
	nata := activeUser("nata")
	remy := activeUser("remy")

	t.Run("follows once and conflicts on repeat", func(t *testing.T) {
		users := newFakeUserStore(nata, remy)
		h := newUserHandlerForTest(users)
		params := map[string]string{"userID": remy.ID.String()}

		r := authed(httptest.NewRequest(http.MethodPut, "/user/follow/"+remy.ID.String(), nil), nata.ID)
		w := serve(h.follow(), r, params)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, users.follows[followEdge{nata.ID, remy.ID}])

		r = authed(httptest.NewRequest(http.MethodPut, "/user/follow/"+remy.ID.String(), nil), nata.ID)
		w = serve(h.follow(), r, params)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "You are already following this user.")
	})

	t.Run("rejects self-follow", func(t *testing.T) {
		h := newUserHandlerForTest(newFakeUserStore(nata))
		params := map[string]string{"userID": nata.ID.String()}

		r := authed(httptest.NewRequest(http.MethodPut, "/user/follow/"+nata.ID.String(), nil), nata.ID)
		w := serve(h.follow(), r, params)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "You can't follow yourself.")
	})

	t.Run("404 on unknown target", func(t *testing.T) {
		h := newUserHandlerForTest(newFakeUserStore(nata))
		ghost := uuid.NewString()

		r := authed(httptest.NewRequest(http.MethodPut, "/user/follow/"+ghost, nil), nata.ID)
		w := serve(h.follow(), r, map[string]string{"userID": ghost})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUnfollowIsIdempotent(t *testing.T) {
	nata := activeUser("nata")
	remy := activeUser("remy")
	users := newFakeUserStore(nata, remy)
	users.follows[followEdge{nata.ID, remy.ID}] = true
	h := newUserHandlerForTest(users)
	params := map[string]string{"userID": remy.ID.String()}

	// First call removes the relation, second finds nothing; both succeed.
	for i := 0; i < 2; i++ {
		r := authed(httptest.NewRequest(http.MethodPut, "/user/unfollow/"+remy.ID.String(), nil), nata.ID)
		w := serve(h.unfollow(), r, params)
		assert.Equal(t, http.StatusOK, w.Code, "call %d", i+1)
	}
	assert.Empty(t, users.follows)
}
