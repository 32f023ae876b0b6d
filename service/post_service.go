// file: service/post_service.go

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"go-blog-api/logger"
	"go-blog-api/model"
	"go-blog-api/repository"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	postListCacheKey = "posts:recent"

	// DefaultPageSize is the page size the public feed uses when the
	// request does not specify one.
	DefaultPageSize = 20
)

// PostService handles post business logic: creation with slug
// generation, ownership checks on mutation, tag management, image
// uploads and a cache-aside listing strategy.
type PostService struct {
	postRepo     repository.IPostRepository
	categoryRepo repository.ICategoryRepository
	cache        ICacheClient
	mediaDir     string
}

func NewPostService(postRepo repository.IPostRepository, categoryRepo repository.ICategoryRepository, cache ICacheClient, mediaDir string) *PostService {
	return &PostService{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		mediaDir:     mediaDir,
	}
}

// CreatePost creates a new post in the given category and invalidates
// the post list cache.
func (s *PostService) CreatePost(authorID, categoryID int, req model.PostRequest) (*model.Post, error) {
	category, err := s.categoryRepo.GetCategoryByID(categoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	post := &model.Post{
		AuthorID:   authorID,
		CategoryID: category.ID,
		Title:      req.Title,
		Content:    req.Content,
	}
	if err := s.postRepo.CreatePost(post, category.Slug); err != nil {
		return nil, err
	}

	s.invalidateListCache()
	return post, nil
}

// ListPosts lists posts newest first, utilizing a cache-aside strategy.
// Only the default first page is cached, which is the one the public
// feed hits; any other page goes straight to the database.
func (s *PostService) ListPosts(limit, offset int) ([]*model.Post, error) {
	ctx := context.Background()
	cacheable := offset == 0 && limit == DefaultPageSize

	if cacheable {
		cached, err := s.cache.Get(ctx, postListCacheKey).Result()
		if err == nil {
			var posts []*model.Post
			if err := json.Unmarshal([]byte(cached), &posts); err == nil {
				return posts, nil
			}
		}
	}

	posts, err := s.postRepo.GetAllPosts(limit, offset)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if data, err := json.Marshal(posts); err == nil {
			s.cache.Set(ctx, postListCacheKey, data, 10*time.Minute)
		}
	}

	return posts, nil
}

// GetPostBySlug fetches a single post with its tags loaded.
func (s *PostService) GetPostBySlug(slug string) (*model.Post, error) {
	post, err := s.postRepo.GetPostBySlug(slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	tags, err := s.postRepo.GetTagsByPostID(post.ID)
	if err != nil {
		return nil, err
	}
	post.Tags = tags

	return post, nil
}

// GetPostsByAuthor lists the posts of one author, newest first.
func (s *PostService) GetPostsByAuthor(authorID int) ([]*model.Post, error) {
	return s.postRepo.GetPostsByAuthorID(authorID)
}

// UpdatePost partially updates a post owned by the calling author and
// recomputes the slug when the title changes.
func (s *PostService) UpdatePost(authorID, postID int, req model.PostUpdateRequest) (*model.Post, error) {
	post, err := s.postRepo.GetPostByIDAndAuthorID(postID, authorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if req.Title != "" && req.Title != post.Title {
		category, err := s.categoryRepo.GetCategoryByID(post.CategoryID)
		if err != nil {
			return nil, err
		}
		post.Title = req.Title
		post.Slug = fmt.Sprintf("%s-%s-%d", model.Slugify(req.Title), category.Slug, post.ID)
	}
	if req.Content != "" {
		post.Content = req.Content
	}

	if err := s.postRepo.UpdatePost(post); err != nil {
		return nil, err
	}

	s.invalidateListCache()
	return post, nil
}

// DeletePost removes a post owned by the calling author.
func (s *PostService) DeletePost(authorID, postID int) error {
	err := s.postRepo.DeletePost(postID, authorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPostNotFound
		}
		return err
	}

	s.invalidateListCache()
	return nil
}

// UploadPostImage stores an uploaded image under the media directory
// and records the generated filename on the post. The caller has
// already validated the file extension.
func (s *PostService) UploadPostImage(authorID, postID int, file io.Reader, originalFilename string) (string, error) {
	post, err := s.postRepo.GetPostByIDAndAuthorID(postID, authorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrPostNotFound
		}
		return "", err
	}

	postsDir := filepath.Join(s.mediaDir, "posts")
	if err := os.MkdirAll(postsDir, 0o755); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(originalFilename))
	filename := fmt.Sprintf("%s_%s%s", post.Slug, uuid.NewString(), ext)

	dst, err := os.Create(filepath.Join(postsDir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	if err := s.postRepo.SetPostImage(post.ID, filename); err != nil {
		return "", err
	}

	logger.Log.WithField("post_id", post.ID).Info("Post image uploaded")
	return filename, nil
}

// AddTags attaches the named tags to a post owned by the calling author.
func (s *PostService) AddTags(authorID, postID int, tagNames []string) error {
	if _, err := s.postRepo.GetPostByIDAndAuthorID(postID, authorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPostNotFound
		}
		return err
	}
	return s.postRepo.AddTagsToPost(postID, tagNames)
}

// RemoveTag detaches a tag from a post owned by the calling author.
func (s *PostService) RemoveTag(authorID, postID, tagID int) error {
	if _, err := s.postRepo.GetPostByIDAndAuthorID(postID, authorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPostNotFound
		}
		return err
	}

	err := s.postRepo.RemoveTagFromPost(postID, tagID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPostNotFound
	}
	return err
}

func (s *PostService) invalidateListCache() {
	s.cache.Del(context.Background(), postListCacheKey)
}
