package repository

import (
	"errors"
	"testing"

	"medi-ai-go/internal/model"
)

func TestMemoryUserRepository(t *testing.T) {
	repo := NewMemoryUserRepository()

	if _, err := repo.FindByEmail("nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("FindByEmail on empty store: err = %v, want ErrUserNotFound", err)
	}

	u := &model.User{ID: "id-1", Name: "Alex", Email: "alex@example.com", Password: "hashed"}
	if err := repo.Create(u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.FindByEmail("alex@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if got.ID != "id-1" {
		t.Errorf("ID = %s", got.ID)
	}

	got, err = repo.FindByID("id-1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}

	// 返回的是副本：修改它不影响存储中的记录
	got.Name = "Mutated"
	again, _ := repo.FindByID("id-1")
	if again.Name != "Alex" {
		t.Error("repository returned a shared reference")
	}

	got.Name = "Updated"
	if err := repo.Update(got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	again, _ = repo.FindByID("id-1")
	if again.Name != "Updated" {
		t.Errorf("Name after update = %s", again.Name)
	}

	if err := repo.Update(&model.User{ID: "missing"}); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Update missing: err = %v, want ErrUserNotFound", err)
	}
}
