package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"pet-care-tracker/internal/domain/analytics"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/sharedaccess"
	"pet-care-tracker/internal/domain/tasklogs"
	"pet-care-tracker/internal/domain/tasks"
	"pet-care-tracker/internal/domain/users"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var baseTime = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func seedUser(t *testing.T, db *sql.DB, id, email string) {
	t.Helper()
	repo := NewUsersRepo(db)
	err := repo.Create(context.Background(), users.User{
		ID: id, Name: "Test", Email: email, PasswordHash: "x",
		Preferences: users.DefaultPreferences(),
		CreatedAt:   baseTime, UpdatedAt: baseTime,
	})
	if err != nil {
		t.Fatalf("seedUser %s: %v", id, err)
	}
}

func seedPet(t *testing.T, db *sql.DB, id, ownerID, name string) {
	t.Helper()
	repo := NewPetsRepo(db)
	err := repo.Create(context.Background(), pets.Pet{
		ID: id, OwnerUserID: ownerID, Name: name, Type: pets.TypeDog,
		CreatedAt: baseTime, UpdatedAt: baseTime,
	})
	if err != nil {
		t.Fatalf("seedPet %s: %v", id, err)
	}
}

func seedTask(t *testing.T, db *sql.DB, id, petID string, scheduled time.Time) {
	t.Helper()
	repo := NewTasksRepo(db)
	err := repo.Create(context.Background(), tasks.Task{
		ID: id, PetID: petID, Title: "Tarea", Type: tasks.TypeFeeding,
		Priority: tasks.PriorityMedium, ScheduledTime: scheduled,
		CreatedAt: baseTime, UpdatedAt: baseTime,
	})
	if err != nil {
		t.Fatalf("seedTask %s: %v", id, err)
	}
}

func TestUsersRepo_RoundTripWithPreferences(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewUsersRepo(db)

	prefs := users.DefaultPreferences()
	prefs.Theme = users.ThemeDark
	err := repo.Create(ctx, users.User{
		ID: "u1", Name: "Ana", Email: "ana@example.com", PasswordHash: "hash",
		Preferences: prefs, CreatedAt: baseTime, UpdatedAt: baseTime,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.Preferences.Theme != users.ThemeDark || got.Preferences.Version != users.PreferencesVersion {
		t.Errorf("preferencias no sobrevivieron el roundtrip: %+v", got.Preferences)
	}

	if _, err := repo.GetByEmail(ctx, "nadie@example.com"); !errors.Is(err, users.ErrNotFound) {
		t.Errorf("esperaba ErrNotFound, vino %v", err)
	}

	// El UNIQUE de email corta el duplicado a nivel de esquema.
	err = repo.Create(ctx, users.User{
		ID: "u2", Name: "Otra", Email: "ana@example.com", PasswordHash: "hash",
		CreatedAt: baseTime, UpdatedAt: baseTime,
	})
	if err == nil {
		t.Error("email duplicado tendría que fallar")
	}
}

func TestPetsRepo_UpdateRequiresEditor(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewPetsRepo(db)
	seedUser(t, db, "owner", "owner@example.com")
	seedUser(t, db, "stranger", "stranger@example.com")
	seedPet(t, db, "p1", "owner", "Rocky")

	p, err := repo.GetByID(ctx, "p1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	p.Name = "Rocco"
	p.UpdatedAt = baseTime.Add(time.Hour)

	if err := repo.Update(ctx, p, "stranger"); !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("update ajeno: esperaba ErrNotFound, vino %v", err)
	}
	if err := repo.Update(ctx, p, "owner"); err != nil {
		t.Fatalf("update propio: %v", err)
	}

	got, _ := repo.GetByID(ctx, "p1")
	if got.Name != "Rocco" {
		t.Errorf("nombre: esperaba Rocco, vino %q", got.Name)
	}
}

func TestPetsRepo_UpdateAllowsCaregiver(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewPetsRepo(db)
	shared := NewSharedAccessRepo(db)
	seedUser(t, db, "owner", "owner@example.com")
	seedUser(t, db, "cuidador", "cuidador@example.com")
	seedPet(t, db, "p1", "owner", "Rocky")

	err := shared.Create(ctx, sharedaccess.Grant{
		ID: "g1", PetID: "p1", UserID: "cuidador", Role: sharedaccess.RoleCaregiver,
		CreatedAt: baseTime, UpdatedAt: baseTime,
	})
	if err != nil {
		t.Fatalf("grant: %v", err)
	}

	p, _ := repo.GetByID(ctx, "p1")
	p.Breed = "Boxer"
	if err := repo.Update(ctx, p, "cuidador"); err != nil {
		t.Fatalf("update de caregiver: %v", err)
	}
}

func TestPetsRepo_DeleteCascades(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewPetsRepo(db)
	tasksRepo := NewTasksRepo(db)
	seedUser(t, db, "owner", "owner@example.com")
	seedPet(t, db, "p1", "owner", "Rocky")
	seedTask(t, db, "t1", "p1", baseTime)

	entry := tasklogs.Entry{ID: "log1", CompletedAt: baseTime.Add(time.Minute)}
	if err := tasksRepo.Complete(ctx, "t1", "owner", entry); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if err := repo.Delete(ctx, "p1", "stranger"); !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("delete ajeno: esperaba ErrNotFound, vino %v", err)
	}
	if err := repo.Delete(ctx, "p1", "owner"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	for _, table := range []string{"pets", "tasks", "task_logs"} {
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("%s: esperaba 0 filas tras el cascade, hay %d", table, n)
		}
	}
}

func TestTasksRepo_CompleteIsOneWay(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewTasksRepo(db)
	seedUser(t, db, "owner", "owner@example.com")
	seedPet(t, db, "p1", "owner", "Rocky")
	seedTask(t, db, "t1", "p1", baseTime)

	dur := 10
	entry := tasklogs.Entry{
		ID: "log1", CompletedAt: baseTime.Add(time.Minute),
		Notes: "todo bien", Duration: &dur, Mood: tasklogs.MoodGood,
	}
	if err := repo.Complete(ctx, "t1", "owner", entry); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	err := repo.Complete(ctx, "t1", "owner", tasklogs.Entry{ID: "log2", CompletedAt: baseTime.Add(2 * time.Minute)})
	if !errors.Is(err, tasks.ErrAlreadyCompleted) {
		t.Fatalf("segunda completion: esperaba ErrAlreadyCompleted, vino %v", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM task_logs").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("esperaba exactamente 1 log, hay %d", n)
	}

	got, err := repo.GetAccessible(ctx, "t1", "owner")
	if err != nil {
		t.Fatalf("GetAccessible: %v", err)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(entry.CompletedAt) {
		t.Errorf("completed_at: esperaba %v, vino %v", entry.CompletedAt, got.CompletedAt)
	}
}

func TestTasksRepo_CompleteForeignTaskIsNotFound(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewTasksRepo(db)
	seedUser(t, db, "owner", "owner@example.com")
	seedUser(t, db, "stranger", "stranger@example.com")
	seedPet(t, db, "p1", "owner", "Rocky")
	seedTask(t, db, "t1", "p1", baseTime)

	err := repo.Complete(ctx, "t1", "stranger", tasklogs.Entry{ID: "log1", CompletedAt: baseTime})
	if !errors.Is(err, tasks.ErrNotFound) {
		t.Fatalf("esperaba ErrNotFound, vino %v", err)
	}
}

func TestTasksRepo_ListFilters(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewTasksRepo(db)
	seedUser(t, db, "owner", "owner@example.com")
	seedPet(t, db, "p1", "owner", "Rocky")
	seedPet(t, db, "p2", "owner", "Luna")
	seedTask(t, db, "t1", "p1", time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	seedTask(t, db, "t2", "p1", time.Date(2025, 3, 11, 8, 0, 0, 0, time.UTC))
	seedTask(t, db, "t3", "p2", time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	byDate, err := repo.List(ctx, "owner", tasks.Filter{Date: "2025-03-10"})
	if err != nil {
		t.Fatalf("List por fecha: %v", err)
	}
	if len(byDate) != 2 {
		t.Fatalf("filtro por fecha: esperaba 2, vino %d", len(byDate))
	}
	if byDate[0].ID != "t1" || byDate[1].ID != "t3" {
		t.Errorf("orden por scheduled_time: vino %s, %s", byDate[0].ID, byDate[1].ID)
	}

	byPet, err := repo.List(ctx, "owner", tasks.Filter{PetID: "p2"})
	if err != nil {
		t.Fatalf("List por mascota: %v", err)
	}
	if len(byPet) != 1 || byPet[0].PetName != "Luna" {
		t.Errorf("filtro por mascota: %+v", byPet)
	}
}

func TestTasksRepo_ListIsScopedToUser(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewTasksRepo(db)
	seedUser(t, db, "u1", "u1@example.com")
	seedUser(t, db, "u2", "u2@example.com")
	seedPet(t, db, "p1", "u1", "Rocky")
	seedTask(t, db, "t1", "p1", baseTime)

	mine, err := repo.List(ctx, "u1", tasks.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("dueño: esperaba 1 task, vino %d", len(mine))
	}

	others, err := repo.List(ctx, "u2", tasks.Filter{})
	if err != nil {
		t.Fatalf("List ajeno: %v", err)
	}
	if len(others) != 0 {
		t.Fatalf("ajeno: esperaba 0 tasks, vino %d", len(others))
	}
}

func TestTaskLogsRepo_ListJoinsContext(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	tasksRepo := NewTasksRepo(db)
	logsRepo := NewTaskLogsRepo(db)
	seedUser(t, db, "owner", "owner@example.com")
	seedPet(t, db, "p1", "owner", "Rocky")
	seedTask(t, db, "t1", "p1", baseTime)

	entry := tasklogs.Entry{ID: "log1", CompletedAt: baseTime.Add(time.Minute), Mood: tasklogs.MoodGreat}
	if err := tasksRepo.Complete(ctx, "t1", "owner", entry); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	logs, err := logsRepo.List(ctx, "owner", tasklogs.Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("esperaba 1 log, vino %d", len(logs))
	}
	if logs[0].PetName != "Rocky" || logs[0].TaskTitle != "Tarea" {
		t.Errorf("contexto del join: %+v", logs[0])
	}
}

func TestAnalyticsRepo_TypeAndPetStats(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	tasksRepo := NewTasksRepo(db)
	analyticsRepo := NewAnalyticsRepo(db)
	seedUser(t, db, "owner", "owner@example.com")
	seedPet(t, db, "p1", "owner", "Rocky")
	seedPet(t, db, "p2", "owner", "Luna")
	seedTask(t, db, "t1", "p1", baseTime)
	seedTask(t, db, "t2", "p1", baseTime.Add(time.Hour))

	if err := tasksRepo.Complete(ctx, "t1", "owner", tasklogs.Entry{ID: "log1", CompletedAt: baseTime}); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	byType, err := analyticsRepo.TaskStatsByType(ctx, "owner", analytics.TaskFilter{})
	if err != nil {
		t.Fatalf("TaskStatsByType: %v", err)
	}
	if len(byType) != 1 || byType[0].Type != "feeding" || byType[0].Total != 2 || byType[0].Completed != 1 {
		t.Errorf("stats por tipo: %+v", byType)
	}

	byPet, err := analyticsRepo.TaskStatsByPet(ctx, "owner", "")
	if err != nil {
		t.Fatalf("TaskStatsByPet: %v", err)
	}
	if len(byPet) != 2 {
		t.Fatalf("esperaba 2 mascotas, vino %d", len(byPet))
	}
	// Luna no tiene tasks: totales en cero igual aparecen.
	if byPet[0].PetName != "Luna" || byPet[0].Total != 0 || byPet[0].Completed != 0 {
		t.Errorf("mascota sin tasks: %+v", byPet[0])
	}
	if byPet[1].PetName != "Rocky" || byPet[1].Total != 2 || byPet[1].Completed != 1 {
		t.Errorf("mascota con tasks: %+v", byPet[1])
	}
}

func TestSharedAccessRepo_UniquePerPetAndUser(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewSharedAccessRepo(db)
	seedUser(t, db, "owner", "owner@example.com")
	seedUser(t, db, "amigo", "amigo@example.com")
	seedPet(t, db, "p1", "owner", "Rocky")

	g := sharedaccess.Grant{
		ID: "g1", PetID: "p1", UserID: "amigo", Role: sharedaccess.RoleViewer,
		CreatedAt: baseTime, UpdatedAt: baseTime,
	}
	if err := repo.Create(ctx, g); err != nil {
		t.Fatalf("Create: %v", err)
	}

	g.ID = "g2"
	if err := repo.Create(ctx, g); err == nil {
		t.Error("segundo grant para el mismo par tendría que fallar por UNIQUE")
	}

	if err := repo.UpdateRole(ctx, "g1", sharedaccess.RoleCaregiver, baseTime.Add(time.Hour)); err != nil {
		t.Fatalf("UpdateRole: %v", err)
	}
	got, err := repo.GetByPetAndUser(ctx, "p1", "amigo")
	if err != nil {
		t.Fatalf("GetByPetAndUser: %v", err)
	}
	if got.Role != sharedaccess.RoleCaregiver {
		t.Errorf("rol: esperaba caregiver, vino %s", got.Role)
	}
}
