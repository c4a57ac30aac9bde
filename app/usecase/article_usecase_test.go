package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"blog-service/app/domain"
	"blog-service/app/mocks"
	"blog-service/app/port"
	apperrors "blog-service/app/utils/errors"
	"blog-service/app/utils/logger"
)

func newArticleUseCase(t *testing.T) (*ArticleUseCase, *mocks.MockArticleRepository, *mocks.MockListingCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	articleRepo := mocks.NewMockArticleRepository(ctrl)
	listCache := mocks.NewMockListingCache(ctrl)

	testLogger, err := logger.New("error")
	require.NoError(t, err)

	return NewArticleUseCase(articleRepo, listCache, testLogger), articleRepo, listCache
}

func testAuthor() *domain.User {
	return domain.NewUser("author@example.com", "Author", "hash")
}

func TestArticleUseCase_List(t *testing.T) {
	t.Run("cache miss hits the repository and fills the cache", func(t *testing.T) {
		uc, articleRepo, listCache := newArticleUseCase(t)

		query := port.ListQuery{}
		list := &domain.ArticleList{Items: []domain.ArticleListItem{}, Total: 0}

		listCache.EXPECT().Get(query).Return(nil, false)
		articleRepo.EXPECT().List(gomock.Any(), query).Return(list, nil)
		listCache.EXPECT().Set(query, list)

		got, err := uc.List(context.Background(), query)
		require.NoError(t, err)
		assert.Same(t, list, got)
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		uc, _, listCache := newArticleUseCase(t)

		query := port.ListQuery{}
		list := &domain.ArticleList{Items: []domain.ArticleListItem{}, Total: 3}

		listCache.EXPECT().Get(query).Return(list, true)

		got, err := uc.List(context.Background(), query)
		require.NoError(t, err)
		assert.Same(t, list, got)
	})

	t.Run("negative limit is rejected", func(t *testing.T) {
		uc, _, _ := newArticleUseCase(t)

		limit := -1
		_, err := uc.List(context.Background(), port.ListQuery{Limit: &limit})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))
	})

	t.Run("negative offset is rejected", func(t *testing.T) {
		uc, _, _ := newArticleUseCase(t)

		offset := -5
		_, err := uc.List(context.Background(), port.ListQuery{Offset: &offset})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))
	})
}

func TestArticleUseCase_Create(t *testing.T) {
	t.Run("persists, invalidates the listing cache and attaches the author", func(t *testing.T) {
		uc, articleRepo, listCache := newArticleUseCase(t)
		author := testAuthor()

		articleRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, article *domain.Article) error {
				assert.Equal(t, "hello-world", article.Slug)
				assert.Equal(t, author.ID, article.AuthorID)
				return nil
			})
		listCache.EXPECT().Invalidate()

		article, err := uc.Create(context.Background(), author, &domain.CreateArticleRequest{
			Title:       "Hello, World!",
			Description: "greeting",
			Body:        "body",
		})
		require.NoError(t, err)
		assert.Same(t, author, article.Author)
	})

	t.Run("anonymous caller is rejected", func(t *testing.T) {
		uc, _, _ := newArticleUseCase(t)

		_, err := uc.Create(context.Background(), nil, &domain.CreateArticleRequest{
			Title: "T", Description: "d", Body: "b",
		})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnauthenticated))
	})

	t.Run("title without alphanumerics cannot form a slug", func(t *testing.T) {
		uc, _, _ := newArticleUseCase(t)

		_, err := uc.Create(context.Background(), testAuthor(), &domain.CreateArticleRequest{
			Title: "!!!", Description: "d", Body: "b",
		})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))
	})

	t.Run("missing body fails validation", func(t *testing.T) {
		uc, _, _ := newArticleUseCase(t)

		_, err := uc.Create(context.Background(), testAuthor(), &domain.CreateArticleRequest{
			Title: "T", Description: "d",
		})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))
	})
}

func TestArticleUseCase_Update(t *testing.T) {
	t.Run("author may update, slug stays put", func(t *testing.T) {
		uc, articleRepo, listCache := newArticleUseCase(t)
		author := testAuthor()
		article := domain.NewArticle("Original Title", "d", "b", author.ID, nil)

		articleRepo.EXPECT().GetByID(gomock.Any(), article.ID).Return(article, nil)
		articleRepo.EXPECT().Update(gomock.Any(), article).Return(nil)
		listCache.EXPECT().Invalidate()

		newTitle := "Shinier Title"
		updated, err := uc.Update(context.Background(), author, article.ID, &domain.UpdateArticleRequest{
			Title: &newTitle,
		})
		require.NoError(t, err)
		assert.Equal(t, "Shinier Title", updated.Title)
		assert.Equal(t, "original-title", updated.Slug)
	})

	t.Run("non-author gets forbidden before any write", func(t *testing.T) {
		uc, articleRepo, _ := newArticleUseCase(t)
		author := testAuthor()
		intruder := domain.NewUser("other@example.com", "Other", "hash")
		article := domain.NewArticle("Original Title", "d", "b", author.ID, nil)

		articleRepo.EXPECT().GetByID(gomock.Any(), article.ID).Return(article, nil)

		newTitle := "Hijacked"
		_, err := uc.Update(context.Background(), intruder, article.ID, &domain.UpdateArticleRequest{
			Title: &newTitle,
		})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeForbidden))
	})

	t.Run("missing article surfaces as not found", func(t *testing.T) {
		uc, articleRepo, _ := newArticleUseCase(t)
		author := testAuthor()
		article := domain.NewArticle("Gone", "d", "b", author.ID, nil)

		articleRepo.EXPECT().GetByID(gomock.Any(), article.ID).
			Return(nil, apperrors.NewNotFound("article"))

		_, err := uc.Update(context.Background(), author, article.ID, &domain.UpdateArticleRequest{})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
	})
}

func TestArticleUseCase_Delete(t *testing.T) {
	t.Run("author may delete", func(t *testing.T) {
		uc, articleRepo, listCache := newArticleUseCase(t)
		author := testAuthor()
		article := domain.NewArticle("Doomed", "d", "b", author.ID, nil)

		articleRepo.EXPECT().GetByID(gomock.Any(), article.ID).Return(article, nil)
		articleRepo.EXPECT().Delete(gomock.Any(), article.ID).Return(nil)
		listCache.EXPECT().Invalidate()

		err := uc.Delete(context.Background(), author, article.ID)
		assert.NoError(t, err)
	})

	t.Run("non-author gets forbidden", func(t *testing.T) {
		uc, articleRepo, _ := newArticleUseCase(t)
		author := testAuthor()
		intruder := domain.NewUser("other@example.com", "Other", "hash")
		article := domain.NewArticle("Doomed", "d", "b", author.ID, nil)

		articleRepo.EXPECT().GetByID(gomock.Any(), article.ID).Return(article, nil)

		err := uc.Delete(context.Background(), intruder, article.ID)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeForbidden))
	})

	t.Run("missing article surfaces as not found", func(t *testing.T) {
		uc, articleRepo, _ := newArticleUseCase(t)
		author := testAuthor()
		article := domain.NewArticle("Ghost", "d", "b", author.ID, nil)

		articleRepo.EXPECT().GetByID(gomock.Any(), article.ID).
			Return(nil, apperrors.NewNotFound("article"))

		err := uc.Delete(context.Background(), author, article.ID)
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
	})
}

func TestArticleUseCase_AddComment(t *testing.T) {
	t.Run("any authenticated user may comment", func(t *testing.T) {
		uc, articleRepo, listCache := newArticleUseCase(t)
		owner := testAuthor()
		commenter := domain.NewUser("reader@example.com", "Reader", "hash")
		article := domain.NewArticle("Discussed", "d", "b", owner.ID, nil)

		articleRepo.EXPECT().GetBySlug(gomock.Any(), "discussed").Return(article, nil)
		articleRepo.EXPECT().AddComment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, comment *domain.Comment) error {
				assert.Equal(t, article.ID, comment.ArticleID)
				assert.Equal(t, commenter.ID, comment.AuthorID)
				return nil
			})
		listCache.EXPECT().Invalidate()

		comment, err := uc.AddComment(context.Background(), commenter, "discussed", &domain.CreateCommentRequest{
			Body: "great read",
		})
		require.NoError(t, err)
		assert.Same(t, commenter, comment.Author)
	})

	t.Run("anonymous caller is rejected", func(t *testing.T) {
		uc, _, _ := newArticleUseCase(t)

		_, err := uc.AddComment(context.Background(), nil, "discussed", &domain.CreateCommentRequest{
			Body: "great read",
		})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnauthenticated))
	})

	t.Run("comment on unknown slug surfaces as not found", func(t *testing.T) {
		uc, articleRepo, _ := newArticleUseCase(t)
		commenter := testAuthor()

		articleRepo.EXPECT().GetBySlug(gomock.Any(), "missing").
			Return(nil, apperrors.NewNotFound("article"))

		_, err := uc.AddComment(context.Background(), commenter, "missing", &domain.CreateCommentRequest{
			Body: "hello?",
		})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeNotFound))
	})

	t.Run("empty body fails validation", func(t *testing.T) {
		uc, _, _ := newArticleUseCase(t)

		_, err := uc.AddComment(context.Background(), testAuthor(), "discussed", &domain.CreateCommentRequest{})
		assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeValidationFailed))
	})
}
