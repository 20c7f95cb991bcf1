package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-microblog/internal/models"
	"github.com/sbilibin2017/gw-microblog/internal/services"
)

func TestProfileHandler(t *testing.T) {
	about := "hello"
	susan := &models.UserDB{ID: 2, Username: "susan", Email: "susan@example.com", AboutMe: &about}

	tests := []struct {
		name         string
		mockSetup    func(m *MockProfileReader)
		expectedCode int
	}{
		{
			name: "found",
			mockSetup: func(m *MockProfileReader) {
				m.EXPECT().GetProfile(gomock.Any(), int64(1), "susan").Return(&models.Profile{
					User:           susan,
					FollowersCount: 3,
					FollowingCount: 1,
					IsFollowing:    true,
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "not found",
			mockSetup: func(m *MockProfileReader) {
				m.EXPECT().GetProfile(gomock.Any(), int64(1), "susan").Return(nil, services.ErrUserNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "store failure",
			mockSetup: func(m *MockProfileReader) {
				m.EXPECT().GetProfile(gomock.Any(), int64(1), "susan").Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockProfileReader(ctrl)
			tt.mockSetup(mockSvc)

			rr := serve(NewProfileHandler(mockSvc), http.MethodGet, "/users/{username}", "/users/susan", nil, 1)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp ProfileResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, "susan", resp.Username)
				assert.Equal(t, int64(3), resp.FollowersCount)
				assert.True(t, resp.IsFollowing)
				assert.False(t, resp.IsSelf)
				assert.NotContains(t, rr.Body.String(), "susan@example.com")
			}
			if tt.expectedCode == http.StatusNotFound {
				assert.Equal(t, "User susan not found.", decodeError(t, rr).Error)
			}
		})
	}
}

func TestUserPostsHandler(t *testing.T) {
	t.Run("lists posts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		users := NewMockUserGetter(ctrl)
		posts := NewMockAuthorPostsReader(ctrl)
		users.EXPECT().GetUser(gomock.Any(), "susan").Return(&models.UserDB{ID: 2, Username: "susan"}, nil)
		posts.EXPECT().PostsBy(gomock.Any(), int64(2), 1, 0).
			Return(models.Page[models.PostDB]{Items: []models.PostDB{samplePost(1)}, Page: 1, PerPage: 25}, nil)

		rr := serve(NewUserPostsHandler(users, posts), http.MethodGet,
			"/users/{username}/posts", "/users/susan/posts?page=1", nil, 1)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		users := NewMockUserGetter(ctrl)
		users.EXPECT().GetUser(gomock.Any(), "ghost").Return(nil, services.ErrUserNotFound)

		rr := serve(NewUserPostsHandler(users, NewMockAuthorPostsReader(ctrl)), http.MethodGet,
			"/users/{username}/posts", "/users/ghost/posts", nil, 1)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestEditProfileHandler(t *testing.T) {
	about := "new bio"

	tests := []struct {
		name          string
		body          any
		mockSetup     func(m *MockProfileEditor)
		expectedCode  int
		expectedField string
	}{
		{
			name: "success",
			body: EditProfileRequest{Username: "susan2", AboutMe: &about},
			mockSetup: func(m *MockProfileEditor) {
				m.EXPECT().EditProfile(gomock.Any(), int64(2), "susan2", gomock.Any()).
					DoAndReturn(func(_ any, _ int64, username string, aboutMe *string) (*models.UserDB, error) {
						return &models.UserDB{ID: 2, Username: username, AboutMe: aboutMe}, nil
					})
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "username taken",
			body: EditProfileRequest{Username: "john"},
			mockSetup: func(m *MockProfileEditor) {
				m.EXPECT().EditProfile(gomock.Any(), int64(2), "john", nil).Return(nil, services.ErrUsernameTaken)
			},
			expectedCode:  http.StatusBadRequest,
			expectedField: "username",
		},
		{
			name: "about me too long",
			body: func() EditProfileRequest {
				long := strings.Repeat("a", 141)
				return EditProfileRequest{Username: "susan", AboutMe: &long}
			}(),
			mockSetup:     func(m *MockProfileEditor) {},
			expectedCode:  http.StatusBadRequest,
			expectedField: "about_me",
		},
		{
			name:          "missing username",
			body:          EditProfileRequest{},
			mockSetup:     func(m *MockProfileEditor) {},
			expectedCode:  http.StatusBadRequest,
			expectedField: "username",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockProfileEditor(ctrl)
			tt.mockSetup(mockSvc)

			rr := serve(NewEditProfileHandler(mockSvc), http.MethodPut, "/users/me", "/users/me", tt.body, 2)

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				var resp UserResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, "susan2", resp.Username)
				require.NotNil(t, resp.AboutMe)
				assert.Equal(t, about, *resp.AboutMe)
			}
			if tt.expectedField != "" {
				assert.Contains(t, decodeError(t, rr).Fields, tt.expectedField)
			}
		})
	}
}
