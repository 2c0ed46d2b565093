package service

import (
	"errors"
	"fmt"
	"strings"

	"tgtodo/web-api/auth"
	"tgtodo/web-api/model"

	"gorm.io/gorm"
)

type TodoService struct {
	DB *gorm.DB
}

func NewTodoService(db *gorm.DB) *TodoService {
	return &TodoService{DB: db}
}

// TodoEntry is the public listing shape. The owner's username is included
// when it still resolves, orphaned items just omit it.
type TodoEntry struct {
	ID       uint   `json:"id"`
	Text     string `json:"text"`
	Username string `json:"username,omitempty"`
}

// List returns every to-do in id order. Reads are public by design, no
// identity and no filtering.
func (s *TodoService) List() ([]TodoEntry, error) {
	var todos []model.Todo

	err := s.DB.
		Preload("User").
		Order("id").
		Find(&todos).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch todos, %w", err)
	}

	entries := make([]TodoEntry, 0, len(todos))
	for _, t := range todos {
		e := TodoEntry{
			ID:   t.ID,
			Text: t.Text,
		}

		if t.User != nil {
			e.Username = t.User.Username
		}

		entries = append(entries, e)
	}

	return entries, nil
}

// Create inserts a new to-do owned by ownerID. The owner must exist, the
// session middleware guarantees that for authenticated requests.
func (s *TodoService) Create(text, ownerID string) (*model.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	var found bool

	r := s.DB.Model(&model.User{}).
		Select("count(*) > 0").
		Where("id = ?", ownerID).
		Find(&found)
	if r.Error != nil {
		return nil, fmt.Errorf("failed to check if user exists, %w", r.Error)
	}

	if !found {
		return nil, ErrUnknownUser
	}

	todo := &model.Todo{
		Text:   text,
		UserID: &ownerID,
	}

	if err := s.DB.Create(todo).Error; err != nil {
		return nil, fmt.Errorf("failed to create todo, %w", err)
	}

	return todo, nil
}

// Update rewrites the text of a to-do the identity may act on. A missing row
// and a row owned by someone else both come back as ErrTodoNotFound.
func (s *TodoService) Update(id uint, text string, identity auth.Identity) (*model.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	todo, err := s.fetchForWrite(id, identity)
	if err != nil {
		return nil, err
	}

	err = s.DB.
		Model(todo).
		Update("text", text).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to update todo, %w", err)
	}

	todo.Text = text
	return todo, nil
}

// Delete removes a to-do the identity may act on, with the same merged
// not-found outcome as Update.
func (s *TodoService) Delete(id uint, identity auth.Identity) error {
	todo, err := s.fetchForWrite(id, identity)
	if err != nil {
		return err
	}

	r := s.DB.Delete(&model.Todo{}, todo.ID)
	if r.Error != nil {
		return fmt.Errorf("failed to delete todo, %w", r.Error)
	}

	if r.RowsAffected == 0 {
		return ErrTodoNotFound
	}

	return nil
}

// fetchForWrite loads the record and re-verifies the invoker's right to act
// on it. Every mutation goes through here, never through a cached decision.
func (s *TodoService) fetchForWrite(id uint, identity auth.Identity) (*model.Todo, error) {
	var todo model.Todo

	err := s.DB.First(&todo, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}

		return nil, fmt.Errorf("failed to fetch todo, %w", err)
	}

	if !auth.CanActOnTodo(identity, todo.UserID) {
		return nil, ErrTodoNotFound
	}

	return &todo, nil
}
