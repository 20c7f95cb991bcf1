package services_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-microblog/internal/models"
	"github.com/sbilibin2017/gw-microblog/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePosts(n int) []models.PostDB {
	posts := make([]models.PostDB, n)
	for i := range posts {
		posts[i] = models.PostDB{ID: int64(n - i), Body: fmt.Sprintf("post %d", n-i)}
	}
	return posts
}

func TestPostService_CreatePost(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantBody string
		wantErr  error
	}{
		{name: "plain", body: "hello world", wantBody: "hello world"},
		{name: "trimmed", body: "  hi  \n", wantBody: "hi"},
		{name: "140 multibyte runes", body: strings.Repeat("é", 140), wantBody: strings.Repeat("é", 140)},
		{name: "empty", body: "", wantErr: services.ErrInvalidPostBody},
		{name: "only whitespace", body: "   ", wantErr: services.ErrInvalidPostBody},
		{name: "too long", body: strings.Repeat("a", 141), wantErr: services.ErrInvalidPostBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockWriter := services.NewMockPostWriter(ctrl)
			mockIndex := services.NewMockSearchIndex(ctrl)
			svc := services.NewPostService(nil, mockWriter, mockIndex, nil, 25)

			if tt.wantErr == nil {
				mockWriter.EXPECT().
					Create(gomock.Any(), int64(1), tt.wantBody).
					Return(&models.PostDB{ID: 10, Body: tt.wantBody, UserID: 1}, nil)
				mockIndex.EXPECT().
					Index(gomock.Any(), int64(10), map[string]any{"body": tt.wantBody}).
					Return(nil)
			}

			post, err := svc.CreatePost(context.Background(), 1, tt.body)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, post)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantBody, post.Body)
			}
		})
	}
}

func TestPostService_CreatePost_IndexFailureIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWriter := services.NewMockPostWriter(ctrl)
	mockIndex := services.NewMockSearchIndex(ctrl)
	svc := services.NewPostService(nil, mockWriter, mockIndex, nil, 25)

	mockWriter.EXPECT().Create(gomock.Any(), int64(1), "hi").Return(&models.PostDB{ID: 10, Body: "hi"}, nil)
	mockIndex.EXPECT().Index(gomock.Any(), int64(10), gomock.Any()).Return(errors.New("index down"))

	post, err := svc.CreatePost(context.Background(), 1, "hi")
	assert.NoError(t, err)
	assert.Equal(t, int64(10), post.ID)
}

func TestPostService_CreatePost_IndexesAfterCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWriter := services.NewMockPostWriter(ctrl)
	mockIndex := services.NewMockSearchIndex(ctrl)

	var pending []func(context.Context)
	hook := func(_ context.Context, fn func(context.Context)) { pending = append(pending, fn) }
	svc := services.NewPostService(nil, mockWriter, mockIndex, hook, 25)

	mockWriter.EXPECT().Create(gomock.Any(), int64(1), "hi").Return(&models.PostDB{ID: 10, Body: "hi"}, nil)

	_, err := svc.CreatePost(context.Background(), 1, "hi")
	require.NoError(t, err)
	require.Len(t, pending, 1)

	mockIndex.EXPECT().Index(gomock.Any(), int64(10), gomock.Any()).Return(nil)
	pending[0](context.Background())
}

func TestPostService_FeedFor_Pagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		perPage    int
		wantLimit  int
		wantOffset int
		rows       []models.PostDB
		wantItems  int
		wantPage   int
		wantNext   bool
		wantPrev   bool
	}{
		{
			name: "first page with more", page: 1, perPage: 2,
			wantLimit: 3, wantOffset: 0, rows: makePosts(3),
			wantItems: 2, wantPage: 1, wantNext: true,
		},
		{
			name: "last page", page: 2, perPage: 2,
			wantLimit: 3, wantOffset: 2, rows: makePosts(1),
			wantItems: 1, wantPage: 2, wantPrev: true,
		},
		{
			name: "beyond last page", page: 9, perPage: 2,
			wantLimit: 3, wantOffset: 16, rows: nil,
			wantItems: 0, wantPage: 9, wantPrev: true,
		},
		{
			name: "page below one is the first page", page: -3, perPage: 2,
			wantLimit: 3, wantOffset: 0, rows: makePosts(2),
			wantItems: 2, wantPage: 1,
		},
		{
			name: "non-positive per page uses the default", page: 1, perPage: 0,
			wantLimit: 26, wantOffset: 0, rows: makePosts(26),
			wantItems: 25, wantPage: 1, wantNext: true,
		},
		{
			name: "huge per page is capped", page: 1, perPage: math.MaxInt,
			wantLimit: models.MaxPerPage + 1, wantOffset: 0, rows: makePosts(2),
			wantItems: 2, wantPage: 1,
		},
		{
			name: "huge page is empty", page: math.MaxInt / 10, perPage: 25,
			wantLimit: 26, wantOffset: math.MaxInt, rows: nil,
			wantItems: 0, wantPage: math.MaxInt / 10, wantPrev: true,
		},
		{
			name: "empty feed", page: 1, perPage: 25,
			wantLimit: 26, wantOffset: 0, rows: []models.PostDB{},
			wantItems: 0, wantPage: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockReader := services.NewMockPostReader(ctrl)
			svc := services.NewPostService(mockReader, nil, nil, nil, 25)

			mockReader.EXPECT().ListFeed(gomock.Any(), int64(1), tt.wantLimit, tt.wantOffset).Return(tt.rows, nil)

			page, err := svc.FeedFor(context.Background(), 1, tt.page, tt.perPage)
			require.NoError(t, err)
			assert.NotNil(t, page.Items)
			assert.Len(t, page.Items, tt.wantItems)
			assert.Equal(t, tt.wantPage, page.Page)
			assert.Equal(t, tt.wantNext, page.HasNext)
			assert.Equal(t, tt.wantPrev, page.HasPrev)
		})
	}
}

func TestPostService_ExploreAndPostsBy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockPostReader(ctrl)
	svc := services.NewPostService(mockReader, nil, nil, nil, 25)
	ctx := context.Background()

	mockReader.EXPECT().ListAll(gomock.Any(), 11, 10).Return(makePosts(11), nil)
	page, err := svc.Explore(ctx, 2, 10)
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 3, page.NextPage())
	assert.Equal(t, 1, page.PrevPage())

	mockReader.EXPECT().ListByAuthor(gomock.Any(), int64(5), 26, 0).Return(makePosts(2), nil)
	page, err = svc.PostsBy(ctx, 5, 1, 25)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.False(t, page.HasNext)

	mockReader.EXPECT().ListAll(gomock.Any(), 26, 0).Return(nil, errors.New("db error"))
	_, err = svc.Explore(ctx, 1, 25)
	assert.EqualError(t, err, "db error")
}

func TestPostService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("hits keep relevance order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockReader := services.NewMockPostReader(ctrl)
		mockIndex := services.NewMockSearchIndex(ctrl)
		svc := services.NewPostService(mockReader, nil, mockIndex, nil, 25)

		mockIndex.EXPECT().Query(gomock.Any(), "go", 1, 2).Return([]int64{7, 3}, int64(5), nil)
		mockReader.EXPECT().GetByIDs(gomock.Any(), []int64{7, 3}).Return([]models.PostDB{{ID: 3}, {ID: 7}}, nil)

		page, err := svc.Search(ctx, "go", 1, 2)
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.Equal(t, int64(7), page.Items[0].ID)
		assert.Equal(t, int64(3), page.Items[1].ID)
		assert.True(t, page.HasNext)
		assert.False(t, page.HasPrev)
	})

	t.Run("ids missing from the store are skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockReader := services.NewMockPostReader(ctrl)
		mockIndex := services.NewMockSearchIndex(ctrl)
		svc := services.NewPostService(mockReader, nil, mockIndex, nil, 25)

		mockIndex.EXPECT().Query(gomock.Any(), "go", 2, 2).Return([]int64{9, 8}, int64(4), nil)
		mockReader.EXPECT().GetByIDs(gomock.Any(), []int64{9, 8}).Return([]models.PostDB{{ID: 8}}, nil)

		page, err := svc.Search(ctx, "go", 2, 2)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.False(t, page.HasNext)
		assert.True(t, page.HasPrev)
	})

	t.Run("index failure degrades to no results", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockIndex := services.NewMockSearchIndex(ctrl)
		svc := services.NewPostService(nil, nil, mockIndex, nil, 25)

		mockIndex.EXPECT().Query(gomock.Any(), "go", 1, 25).Return(nil, int64(0), errors.New("unreachable"))

		page, err := svc.Search(ctx, "go", 1, 0)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.False(t, page.HasNext)
	})

	t.Run("blank query skips the index", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := services.NewPostService(nil, nil, services.NewMockSearchIndex(ctrl), nil, 25)

		page, err := svc.Search(ctx, "  ", 1, 25)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
	})
}
