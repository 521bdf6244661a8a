package inmemory

import (
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"yatube/app/models"
	"yatube/app/repository"
)

// Store keeps all entities in memory behind the same repository
// interfaces the gorm implementations satisfy. Used by handler tests and
// local experiments; the HTTP layer cannot tell the difference.
type Store struct {
	mu       sync.RWMutex
	users    map[uint]models.User
	groups   map[uint]models.Group
	posts    map[uint]models.Post
	comments map[uint]models.Comment
	follows  map[[2]uint]models.Follow
	nextID   uint
}

// New creates an empty in-memory store
func New() *Store {
	return &Store{
		users:    make(map[uint]models.User),
		groups:   make(map[uint]models.Group),
		posts:    make(map[uint]models.Post),
		comments: make(map[uint]models.Comment),
		follows:  make(map[[2]uint]models.Follow),
	}
}

// Repositories bundles the store into the shape the controllers consume
func (s *Store) Repositories() *repository.Repositories {
	return &repository.Repositories{
		User:    &userRepo{s},
		Group:   &groupRepo{s},
		Post:    &postRepo{s},
		Comment: &commentRepo{s},
		Follow:  &followRepo{s},
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

// newestFirst orders by creation time descending with the ID as tiebreaker,
// matching the SQL "created_at DESC, id DESC" ordering.
func newestFirst(posts []models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

func page(posts []models.Post, offset, limit int) []models.Post {
	if offset >= len(posts) {
		return []models.Post{}
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end]
}

// === users ===

type userRepo struct{ s *Store }

func (r *userRepo) Create(user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.s.id()
	user.CreatedAt = stamp(user.CreatedAt)
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetByID(id uint) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *userRepo) GetByUsername(username string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *userRepo) GetByEmail(email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *userRepo) Count() (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.users)), nil
}

// === groups ===

type groupRepo struct{ s *Store }

func (r *groupRepo) Create(group *models.Group) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, g := range r.s.groups {
		if g.Slug == group.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	group.ID = r.s.id()
	group.CreatedAt = stamp(group.CreatedAt)
	r.s.groups[group.ID] = *group
	return nil
}

func (r *groupRepo) GetByID(id uint) (*models.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	g, ok := r.s.groups[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &g, nil
}

func (r *groupRepo) GetBySlug(slug string) (*models.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, g := range r.s.groups {
		if g.Slug == slug {
			g := g
			return &g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *groupRepo) GetAll() ([]models.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	groups := make([]models.Group, 0, len(r.s.groups))
	for _, g := range r.s.groups {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Title < groups[j].Title })
	return groups, nil
}

func (r *groupRepo) SlugExists(slug string) (bool, error) {
	_, err := r.GetBySlug(slug)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	return err == nil, err
}

// === posts ===

type postRepo struct{ s *Store }

func (r *postRepo) Create(post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	post.ID = r.s.id()
	post.CreatedAt = stamp(post.CreatedAt)
	r.s.posts[post.ID] = *post
	return nil
}

func (r *postRepo) GetByID(id uint) (*models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	r.hydrate(&p)
	return &p, nil
}

func (r *postRepo) Update(post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[post.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.s.posts[post.ID] = *post
	return nil
}

func (r *postRepo) Delete(id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.posts, id)
	for cid, c := range r.s.comments {
		if c.PostID == id {
			delete(r.s.comments, cid)
		}
	}
	return nil
}

func (r *postRepo) List(offset, limit int) ([]models.Post, error) {
	return r.filtered(func(models.Post) bool { return true }, offset, limit)
}

func (r *postRepo) Count() (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.posts)), nil
}

func (r *postRepo) ListByGroup(groupID uint, offset, limit int) ([]models.Post, error) {
	return r.filtered(func(p models.Post) bool {
		return p.GroupID != nil && *p.GroupID == groupID
	}, offset, limit)
}

func (r *postRepo) CountByGroup(groupID uint) (int64, error) {
	return r.count(func(p models.Post) bool {
		return p.GroupID != nil && *p.GroupID == groupID
	})
}

func (r *postRepo) ListByAuthor(authorID uint, offset, limit int) ([]models.Post, error) {
	return r.filtered(func(p models.Post) bool { return p.AuthorID == authorID }, offset, limit)
}

func (r *postRepo) CountByAuthor(authorID uint) (int64, error) {
	return r.count(func(p models.Post) bool { return p.AuthorID == authorID })
}

func (r *postRepo) ListFeed(followerID uint, offset, limit int) ([]models.Post, error) {
	followed := r.s.followedSet(followerID)
	return r.filtered(func(p models.Post) bool { return followed[p.AuthorID] }, offset, limit)
}

func (r *postRepo) CountFeed(followerID uint) (int64, error) {
	followed := r.s.followedSet(followerID)
	return r.count(func(p models.Post) bool { return followed[p.AuthorID] })
}

func (r *postRepo) filtered(keep func(models.Post) bool, offset, limit int) ([]models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var posts []models.Post
	for _, p := range r.s.posts {
		if keep(p) {
			r.hydrate(&p)
			posts = append(posts, p)
		}
	}
	newestFirst(posts)
	return page(posts, offset, limit), nil
}

func (r *postRepo) count(keep func(models.Post) bool) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, p := range r.s.posts {
		if keep(p) {
			n++
		}
	}
	return n, nil
}

// hydrate fills the Author and Group references the gorm repository
// preloads. Caller holds at least the read lock.
func (r *postRepo) hydrate(p *models.Post) {
	if u, ok := r.s.users[p.AuthorID]; ok {
		p.Author = u
	}
	if p.GroupID != nil {
		if g, ok := r.s.groups[*p.GroupID]; ok {
			g := g
			p.Group = &g
		}
	}
}

// === comments ===

type commentRepo struct{ s *Store }

func (r *commentRepo) Create(comment *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.posts[comment.PostID]; !ok {
		return gorm.ErrForeignKeyViolated
	}
	comment.ID = r.s.id()
	comment.CreatedAt = stamp(comment.CreatedAt)
	r.s.comments[comment.ID] = *comment
	return nil
}

func (r *commentRepo) ListByPost(postID uint) ([]models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var comments []models.Comment
	for _, c := range r.s.comments {
		if c.PostID == postID {
			if u, ok := r.s.users[c.AuthorID]; ok {
				c.Author = u
			}
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID > comments[j].ID
		}
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (r *commentRepo) CountByPost(postID uint) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, c := range r.s.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n, nil
}

// === follows ===

type followRepo struct{ s *Store }

func (r *followRepo) Follow(followerID, authorID uint) error {
	if followerID == authorID {
		return models.ErrSelfFollow
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]uint{followerID, authorID}
	if _, ok := r.s.follows[key]; ok {
		return nil
	}
	r.s.follows[key] = models.Follow{
		ID:         r.s.id(),
		FollowerID: followerID,
		AuthorID:   authorID,
		CreatedAt:  time.Now(),
	}
	return nil
}

func (r *followRepo) Unfollow(followerID, authorID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.follows, [2]uint{followerID, authorID})
	return nil
}

func (r *followRepo) IsFollowing(followerID, authorID uint) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.follows[[2]uint{followerID, authorID}]
	return ok, nil
}

func (s *Store) followedSet(followerID uint) map[uint]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	followed := make(map[uint]bool)
	for key := range s.follows {
		if key[0] == followerID {
			followed[key[1]] = true
		}
	}
	return followed
}

// FollowCount returns the number of follow relations in the store.
// Test helper for idempotency assertions.
func (s *Store) FollowCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.follows)
}
