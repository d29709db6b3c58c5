package services

import (
	"testing"
	"time"

	"github.com/taskcamp/taskcamp/internal/models"
	"github.com/taskcamp/taskcamp/pkg/apperr"
)

func TestPersonalTaskCreate_Defaults(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPersonalTaskService(db)

	user := createTestUser(t, db, "alice")
	task, err := svc.Create(user.ID, &PersonalTaskCreateRequest{Title: "write report"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("Priority = %q, expected medium", task.Priority)
	}
	if task.Status != models.TaskTodo {
		t.Errorf("Status = %q, expected todo", task.Status)
	}
}

func TestPersonalTaskCreate_InvalidPriority(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPersonalTaskService(db)

	user := createTestUser(t, db, "alice")
	_, err := svc.Create(user.ID, &PersonalTaskCreateRequest{Title: "x", Priority: "urgent-ish"})
	expectKind(t, err, apperr.KindBadRequest, "Invalid task priority")
}

func TestPersonalTask_ScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPersonalTaskService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	task, err := svc.Create(alice.ID, &PersonalTaskCreateRequest{Title: "private"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.GetByID(bob.ID, task.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("another user's task must look like it does not exist, got %v", err)
	}

	resp, err := svc.List(bob.ID, &PersonalTaskListRequest{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("bob sees %d of alice's tasks", resp.Total)
	}
}

func TestPersonalTaskList_OverdueFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPersonalTaskService(db)

	user := createTestUser(t, db, "alice")
	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)

	if _, err := svc.Create(user.ID, &PersonalTaskCreateRequest{Title: "late", Deadline: &past}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(user.ID, &PersonalTaskCreateRequest{Title: "on time", Deadline: &future}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	// A finished task is never overdue, no matter the deadline.
	if _, err := svc.Create(user.ID, &PersonalTaskCreateRequest{
		Title: "done late", Deadline: &past, Status: models.TaskDone,
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	overdue := true
	resp, err := svc.List(user.ID, &PersonalTaskListRequest{Overdue: &overdue})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("Total = %d, expected 1", resp.Total)
	}
	if resp.Items[0].Title != "late" {
		t.Errorf("overdue filter returned %q", resp.Items[0].Title)
	}
}

func TestPersonalTaskUpdate_EmptyPatch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPersonalTaskService(db)

	user := createTestUser(t, db, "alice")
	_, err := svc.Update(user.ID, 1, &PersonalTaskPatchRequest{})
	expectKind(t, err, apperr.KindBadRequest, "No data to update")
}

func TestPersonalTaskDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPersonalTaskService(db)

	user := createTestUser(t, db, "alice")
	task, err := svc.Create(user.ID, &PersonalTaskCreateRequest{Title: "temp"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(user.ID, task.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.GetByID(user.ID, task.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("deleted task should be gone, got %v", err)
	}
}

func TestTaskOrderClause_Whitelist(t *testing.T) {
	if got := taskOrderClause("deadline", "asc"); got != "deadline ASC" {
		t.Errorf("got %q", got)
	}
	if got := taskOrderClause("id; DROP TABLE tasks", "asc"); got != "created_at ASC" {
		t.Errorf("unknown sort field must fall back, got %q", got)
	}
	if got := taskOrderClause("", ""); got != "created_at DESC" {
		t.Errorf("defaults wrong, got %q", got)
	}
}
