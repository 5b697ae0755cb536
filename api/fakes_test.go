package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/natakamm/My-Art-Gallery-BE/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeBlobStore keeps uploaded objects in memory so tests can assert what
// survived a handler run, including rollbacks.
type fakeBlobStore struct {
	objects map[string]bool
	putErr  error
	delErr  error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: map[string]bool{}}
}

func (s *fakeBlobStore) Put(_ context.Context, key, _ string, _ io.Reader) (string, error) {
	if s.putErr != nil {
		return "", s.putErr
	}
	s.objects[key] = true
	return "https://cdn.test/" + key, nil
}

func (s *fakeBlobStore) Delete(_ context.Context, key string) error {
	if s.delErr != nil {
		return s.delErr
	}
	delete(s.objects, key)
	return nil
}

type followEdge struct {
	follower uuid.UUID
	followee uuid.UUID
}

type fakeUserStore struct {
	users   []*models.User
	follows map[followEdge]bool

	addErr error
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	return &fakeUserStore{users: users, follows: map[followEdge]bool{}}
}

func (s *fakeUserStore) FindByID(id uuid.UUID) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) ProfileByID(id uuid.UUID) (*models.User, error) {
	return s.FindByID(id)
}

func (s *fakeUserStore) FindActiveProfileByID(id uuid.UUID) (*models.User, error) {
	u, err := s.FindByID(id)
	if err != nil || !u.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (s *fakeUserStore) FindActiveByIdentifier(identifier string) (*models.User, error) {
	for _, u := range s.users {
		if u.IsActive && (u.Username == identifier || u.Email == identifier) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) ActiveEmailExists(email string) (bool, error) {
	for _, u := range s.users {
		if u.IsActive && u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) ActiveUsernameExists(username string) (bool, error) {
	for _, u := range s.users {
		if u.IsActive && u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) EmailTakenByOther(email string, id uuid.UUID) (bool, error) {
	for _, u := range s.users {
		if u.IsActive && u.Email == email && u.ID != id {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) UsernameTakenByOther(username string, id uuid.UUID) (bool, error) {
	for _, u := range s.users {
		if u.IsActive && u.Username == username && u.ID != id {
			return true, nil
		}
	}
	return false, nil
}

// Add mirrors the partial unique indexes: only active rows conflict.
func (s *fakeUserStore) Add(user *models.User) error {
	if s.addErr != nil {
		return s.addErr
	}
	for _, u := range s.users {
		if u.IsActive && (u.Email == user.Email || u.Username == user.Username) {
			return errors.New(`duplicate key value violates unique constraint "idx_users_active_email"`)
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.users = append(s.users, user)
	return nil
}

func (s *fakeUserStore) UpdateDetails(id uuid.UUID, updates map[string]any) (*models.User, error) {
	u, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if v, ok := updates["email"].(string); ok {
		u.Email = v
	}
	if v, ok := updates["username"].(string); ok {
		u.Username = v
	}
	if v, ok := updates["description"].(string); ok {
		u.Description = &v
	}
	if v, ok := updates["location"].(string); ok {
		u.Location = &v
	}
	if v, ok := updates["website"].(string); ok {
		u.Website = &v
	}
	return u, nil
}

func (s *fakeUserStore) UpdateAvatar(id uuid.UUID, avatar string) error {
	u, err := s.FindByID(id)
	if err != nil {
		return err
	}
	u.Avatar = avatar
	return nil
}

func (s *fakeUserStore) Deactivate(id uuid.UUID) error {
	u, err := s.FindByID(id)
	if err != nil {
		return err
	}
	u.IsActive = false
	return nil
}

func (s *fakeUserStore) ListActive() ([]*models.User, error) {
	var out []*models.User
	for _, u := range s.users {
		if u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *fakeUserStore) Follow(followerID, followeeID uuid.UUID) (bool, error) {
	edge := followEdge{followerID, followeeID}
	if s.follows[edge] {
		return false, nil
	}
	s.follows[edge] = true
	return true, nil
}

func (s *fakeUserStore) Unfollow(followerID, followeeID uuid.UUID) (bool, error) {
	edge := followEdge{followerID, followeeID}
	if !s.follows[edge] {
		return false, nil
	}
	delete(s.follows, edge)
	return true, nil
}

type likeEdge struct {
	entity uuid.UUID
	user   uuid.UUID
}

type fakeProjectStore struct {
	projects []*models.Project
	likes    map[likeEdge]bool

	addErr error
}

func newFakeProjectStore(projects ...*models.Project) *fakeProjectStore {
	return &fakeProjectStore{projects: projects, likes: map[likeEdge]bool{}}
}

func (s *fakeProjectStore) FindAll(page, limit int) ([]*models.Project, error) {
	start := (page - 1) * limit
	if start >= len(s.projects) {
		return nil, nil
	}
	end := start + limit
	if end > len(s.projects) {
		end = len(s.projects)
	}
	return s.projects[start:end], nil
}

func (s *fakeProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	for _, p := range s.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeProjectStore) FindByIDAndOwner(id, ownerID uuid.UUID) (*models.Project, error) {
	p, err := s.FindByID(id)
	if err != nil || p.UserID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (s *fakeProjectStore) FindByOwner(ownerID uuid.UUID) ([]*models.Project, error) {
	var out []*models.Project
	for _, p := range s.projects {
		if p.UserID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeProjectStore) Add(project *models.Project) error {
	if s.addErr != nil {
		return s.addErr
	}
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	s.projects = append(s.projects, project)
	return nil
}

func (s *fakeProjectStore) UpdateTitleDescription(id uuid.UUID, title, description *string) error {
	p, err := s.FindByID(id)
	if err != nil {
		return err
	}
	if title != nil {
		p.Title = *title
	}
	if description != nil {
		p.Description = description
	}
	return nil
}

func (s *fakeProjectStore) UpdateMainImage(id uuid.UUID, mainImage string) error {
	p, err := s.FindByID(id)
	if err != nil {
		return err
	}
	p.MainImage = mainImage
	return nil
}

func (s *fakeProjectStore) UpdateImages(id uuid.UUID, images []string) error {
	p, err := s.FindByID(id)
	if err != nil {
		return err
	}
	p.Images = images
	return nil
}

func (s *fakeProjectStore) Delete(id uuid.UUID) error {
	for i, p := range s.projects {
		if p.ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			for edge := range s.likes {
				if edge.entity == id {
					delete(s.likes, edge)
				}
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *fakeProjectStore) Like(projectID, userID uuid.UUID) (bool, error) {
	edge := likeEdge{projectID, userID}
	if s.likes[edge] {
		return false, nil
	}
	s.likes[edge] = true
	return true, nil
}

func (s *fakeProjectStore) Unlike(projectID, userID uuid.UUID) (bool, error) {
	edge := likeEdge{projectID, userID}
	if !s.likes[edge] {
		return false, nil
	}
	delete(s.likes, edge)
	return true, nil
}

type fakeBlogStore struct {
	blogs []*models.Blog
	saves map[likeEdge]bool
}

func newFakeBlogStore(blogs ...*models.Blog) *fakeBlogStore {
	return &fakeBlogStore{blogs: blogs, saves: map[likeEdge]bool{}}
}

func (s *fakeBlogStore) FindAll(page, limit int) ([]*models.Blog, error) {
	start := (page - 1) * limit
	if start >= len(s.blogs) {
		return nil, nil
	}
	end := start + limit
	if end > len(s.blogs) {
		end = len(s.blogs)
	}
	return s.blogs[start:end], nil
}

func (s *fakeBlogStore) FindByID(id uuid.UUID) (*models.Blog, error) {
	for _, b := range s.blogs {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeBlogStore) FindByIDAndOwner(id, ownerID uuid.UUID) (*models.Blog, error) {
	b, err := s.FindByID(id)
	if err != nil || b.UserID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (s *fakeBlogStore) FindByOwner(ownerID uuid.UUID) ([]*models.Blog, error) {
	var out []*models.Blog
	for _, b := range s.blogs {
		if b.UserID == ownerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *fakeBlogStore) Add(blog *models.Blog) error {
	if blog.ID == uuid.Nil {
		blog.ID = uuid.New()
	}
	s.blogs = append(s.blogs, blog)
	return nil
}

func (s *fakeBlogStore) UpdateTitleContent(id uuid.UUID, title, content *string) error {
	b, err := s.FindByID(id)
	if err != nil {
		return err
	}
	if title != nil {
		b.Title = *title
	}
	if content != nil {
		b.Content = *content
	}
	return nil
}

func (s *fakeBlogStore) UpdateMainImage(id uuid.UUID, mainImage string) error {
	b, err := s.FindByID(id)
	if err != nil {
		return err
	}
	b.MainImage = mainImage
	return nil
}

func (s *fakeBlogStore) UpdateImages(id uuid.UUID, images []string) error {
	b, err := s.FindByID(id)
	if err != nil {
		return err
	}
	b.Images = images
	return nil
}

func (s *fakeBlogStore) Delete(id uuid.UUID) error {
	for i, b := range s.blogs {
		if b.ID == id {
			s.blogs = append(s.blogs[:i], s.blogs[i+1:]...)
			for edge := range s.saves {
				if edge.entity == id {
					delete(s.saves, edge)
				}
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *fakeBlogStore) Save(blogID, userID uuid.UUID) (bool, error) {
	edge := likeEdge{blogID, userID}
	if s.saves[edge] {
		return false, nil
	}
	s.saves[edge] = true
	return true, nil
}

func (s *fakeBlogStore) Unsave(blogID, userID uuid.UUID) (bool, error) {
	edge := likeEdge{blogID, userID}
	if !s.saves[edge] {
		return false, nil
	}
	delete(s.saves, edge)
	return true, nil
}

type fakeCommentStore struct {
	comments []*models.Comment
	projects map[uuid.UUID]bool
}

func newFakeCommentStore(projectIDs ...uuid.UUID) *fakeCommentStore {
	known := map[uuid.UUID]bool{}
	for _, id := range projectIDs {
		known[id] = true
	}
	return &fakeCommentStore{projects: known}
}

func (s *fakeCommentStore) FindByID(id uuid.UUID) (*models.Comment, error) {
	for _, c := range s.comments {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeCommentStore) FindByProject(projectID uuid.UUID) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, c := range s.comments {
		if c.ProjectID == projectID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCommentStore) FindByAuthor(authorID uuid.UUID) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, c := range s.comments {
		if c.UserID == authorID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCommentStore) FindByAuthorAndProject(authorID, projectID uuid.UUID) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, c := range s.comments {
		if c.UserID == authorID && c.ProjectID == projectID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *fakeCommentStore) Add(comment *models.Comment) error {
	if !s.projects[comment.ProjectID] {
		return gorm.ErrRecordNotFound
	}
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	s.comments = append(s.comments, comment)
	return nil
}

func (s *fakeCommentStore) UpdateContent(id uuid.UUID, content string) (*models.Comment, error) {
	c, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	c.Content = content
	return c, nil
}

func (s *fakeCommentStore) Delete(id uuid.UUID) error {
	for i, c := range s.comments {
		if c.ID == id {
			s.comments = append(s.comments[:i], s.comments[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// serve runs a handler against a request carrying the given chi URL params.
func serve(h http.HandlerFunc, r *http.Request, params map[string]string) *httptest.ResponseRecorder {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))

	w := httptest.NewRecorder()
	h(w, r)
	return w
}

// authed attaches an authenticated identity to the request context.
func authed(r *http.Request, userID uuid.UUID) *http.Request {
	return r.WithContext(ctxWithUserID(r.Context(), userID))
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(dst))
}

func activeUser(username string) *models.User {
	return &models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Avatar:   models.DefaultAvatar,
		IsActive: true,
	}
}
