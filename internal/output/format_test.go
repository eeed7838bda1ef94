package output

import (
	"bytes"
	"testing"
	"time"

	"taskflow/internal/service"
	"taskflow/internal/testutil"
	"taskflow/internal/view"
)

var noon = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func TestTask_Pending(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Task(view.Entry{Num: 1, Task: service.Task{
		Title:     "Buy milk",
		Priority:  service.PriorityLow,
		Category:  "Errands",
		CreatedAt: noon,
	}})

	expected := "   1  [ ] Buy milk  (low)  #Errands  Mar 14\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestTask_CompletedWithDescription(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Task(view.Entry{Num: 12, Task: service.Task{
		Title:       "Pay rent",
		Description: "before\nthe 1st",
		Completed:   true,
		Priority:    service.PriorityHigh,
		CreatedAt:   noon,
		CompletedAt: &noon,
	}})

	expected := "  12  [x] Pay rent  (high)  Mar 14\n          before the 1st\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestTask_UntitledTitle(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Task(view.Entry{Num: 1, Task: service.Task{Title: " \n ", Priority: service.PriorityMedium, CreatedAt: noon}})

	expected := "   1  [ ] (untitled)  (medium)  Mar 14\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestTasks_EmptyStates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Tasks(nil, 0)
	p.Tasks(nil, 2)

	expected := view.NoTasksMessage + "\n" + view.NoMatchesMessage + "\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Header(&service.Session{Name: "Ann"})
	p.Header(nil)

	expected := "TaskFlow  Welcome back, Ann\nTaskFlow\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestListGolden(t *testing.T) {
	tasks := []service.Task{
		{ID: "a", Title: "Buy milk", Priority: service.PriorityLow, Category: "Errands", CreatedAt: noon},
		{ID: "b", Title: "Pay rent", Description: "landlord", Completed: true, Priority: service.PriorityHigh, CreatedAt: noon, CompletedAt: &noon},
		{ID: "c", Title: "Write report", Priority: service.PriorityHigh, Category: "Work", CreatedAt: noon},
	}

	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Header(&service.Session{Name: "Ann"})
	p.Tasks(view.Filter{}.Apply(tasks), len(tasks))
	p.Summary(view.Summarize(tasks))

	testutil.Golden(t, "list", buf.Bytes())
}

func TestDetail(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Detail(service.Task{
		ID:          "t1",
		Title:       "Pay rent",
		Priority:    service.PriorityHigh,
		Completed:   true,
		CreatedAt:   noon,
		CompletedAt: &noon,
	})

	expected := "ID:          t1\n" +
		"Title:       Pay rent\n" +
		"Priority:    (high)\n" +
		"Status:      completed\n" +
		"Created:     Mar 14\n" +
		"Completed:   Mar 14\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
