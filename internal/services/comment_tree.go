package services

import (
	"fmt"
	"sort"
	"time"

	"kampusku/internal/models"
)

// CommentView is the wire shape of a comment and its reply subtree.
// Replies is always present, [] when empty.
type CommentView struct {
	ID        uint          `json:"id"`
	Username  string        `json:"username"`
	Content   string        `json:"content"`
	CreatedAt string        `json:"created_at"`
	Replies   []CommentView `json:"replies"`
}

// PostView is the wire shape of a post with its top-level comment forest.
type PostView struct {
	ID        uint          `json:"id"`
	Username  string        `json:"username"`
	Content   string        `json:"content"`
	CreatedAt string        `json:"created_at"`
	Upvotes   int           `json:"upvotes"`
	Downvotes int           `json:"downvotes"`
	Comments  []CommentView `json:"comments"`
}

// FormatTime renders a timestamp the way every entity exposes it: RFC 3339 in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// rootKey stands in for a nil ParentID when grouping. Primary keys start
// at 1, so 0 can never collide with a real comment id.
const rootKey = uint(0)

// BuildCommentForest reconstructs the reply tree for one post's flat
// comment set. A single pass groups comments by parent id, then the roots
// (nil parent) are attached recursively. Each sibling list is sorted
// ascending by creation time, ties broken by id.
//
// Comments whose parent id references a comment missing from the set are
// unreachable and silently dropped. A comment whose author was not loaded
// is a data-integrity fault and fails the whole build.
func BuildCommentForest(comments []models.Comment) ([]CommentView, error) {
	children := make(map[uint][]*models.Comment, len(comments))
	for i := range comments {
		key := rootKey
		if comments[i].ParentID != nil {
			key = *comments[i].ParentID
		}
		children[key] = append(children[key], &comments[i])
	}

	for _, siblings := range children {
		sortSiblings(siblings)
	}

	visited := make(map[uint]bool, len(comments))
	return attachReplies(children[rootKey], children, visited)
}

func sortSiblings(siblings []*models.Comment) {
	sort.Slice(siblings, func(i, j int) bool {
		if siblings[i].CreatedAt.Equal(siblings[j].CreatedAt) {
			return siblings[i].ID < siblings[j].ID
		}
		return siblings[i].CreatedAt.Before(siblings[j].CreatedAt)
	})
}

func attachReplies(siblings []*models.Comment, children map[uint][]*models.Comment, visited map[uint]bool) ([]CommentView, error) {
	views := make([]CommentView, 0, len(siblings))
	for _, c := range siblings {
		if visited[c.ID] {
			// Cannot happen for data written through the API (a parent
			// must pre-exist, so the graph is acyclic), but a corrupted
			// parent chain must not recurse forever.
			continue
		}
		visited[c.ID] = true

		if c.User.ID == 0 {
			return nil, fmt.Errorf("comment %d: author not loaded", c.ID)
		}

		replies, err := attachReplies(children[c.ID], children, visited)
		if err != nil {
			return nil, err
		}
		views = append(views, CommentView{
			ID:        c.ID,
			Username:  c.User.Username,
			Content:   c.Content,
			CreatedAt: FormatTime(c.CreatedAt),
			Replies:   replies,
		})
	}
	return views, nil
}

// SerializePost renders a post together with its already-loaded comment
// set. Only top-level comments appear in Comments; deeper replies nest
// under their parents.
func SerializePost(post models.Post, comments []models.Comment) (PostView, error) {
	if post.User.ID == 0 {
		return PostView{}, fmt.Errorf("post %d: author not loaded", post.ID)
	}

	forest, err := BuildCommentForest(comments)
	if err != nil {
		return PostView{}, err
	}

	return PostView{
		ID:        post.ID,
		Username:  post.User.Username,
		Content:   post.Content,
		CreatedAt: FormatTime(post.CreatedAt),
		Upvotes:   post.Upvotes,
		Downvotes: post.Downvotes,
		Comments:  forest,
	}, nil
}

// CollectSubtreeIDs returns the id of root plus every transitive reply to
// it within the given comment set. Used when deleting a comment so the
// whole subtree goes in one statement.
func CollectSubtreeIDs(comments []models.Comment, rootID uint) []uint {
	children := make(map[uint][]uint, len(comments))
	for i := range comments {
		if comments[i].ParentID != nil {
			children[*comments[i].ParentID] = append(children[*comments[i].ParentID], comments[i].ID)
		}
	}

	ids := []uint{rootID}
	seen := map[uint]bool{rootID: true}
	queue := append([]uint(nil), children[rootID]...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
		queue = append(queue, children[id]...)
	}
	return ids
}
