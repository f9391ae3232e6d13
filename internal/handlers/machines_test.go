package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hadarisas/cabinet-dentaire-backend/internal/models"
)

type machineTestEnv struct {
	appointmentTestEnv
}

// newMachineTestEnv wires the machine routes over an in-memory
// database, without the auth middleware.
func newMachineTestEnv(t *testing.T) *machineTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	room := models.ConsultationRoom{Number: 1, Capacity: 2}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}

	h := NewMachineHandler(db)
	router := gin.New()
	group := router.Group("/api/v1/machines")
	group.POST("", h.CreateMachine)
	group.POST("/assign-to-salle", h.AssignMachineToRoom)
	group.GET("", h.GetMachines)
	group.GET("/:id", h.GetMachineByID)
	group.PUT("/:id", h.UpdateMachine)
	group.DELETE("/:id", h.DeleteMachine)

	env := &machineTestEnv{}
	env.router = router
	env.db = db
	env.room = room
	return env
}

func machineBody() gin.H {
	return gin.H{
		"nom":                  "Radiographie panoramique",
		"modele":               "RX-200",
		"dateAchat":            "2021-01-01",
		"dateDerniereRevision": "2024-11-20",
	}
}

func TestCreateMachineEndpoint(t *testing.T) {
	env := newMachineTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/api/v1/machines", machineBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	data := resp.Data.(map[string]interface{})
	if data["nom"] != "Radiographie panoramique" || data["modele"] != "RX-200" {
		t.Errorf("unexpected payload: %v", data)
	}

	// Both date fields require the strict yyyy-mm-dd format.
	for _, field := range []string{"dateAchat", "dateDerniereRevision"} {
		body := machineBody()
		body[field] = "01/01/2021"
		w, _ = env.do(t, http.MethodPost, "/api/v1/machines", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s = 01/01/2021: status = %d, want 400", field, w.Code)
		}
	}

	body := machineBody()
	delete(body, "modele")
	w, _ = env.do(t, http.MethodPost, "/api/v1/machines", body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing modele: status = %d, want 400", w.Code)
	}
}

func TestUpdateMachineEndpoint(t *testing.T) {
	env := newMachineTestEnv(t)

	_, created := env.do(t, http.MethodPost, "/api/v1/machines", machineBody())
	id := created.Data.(map[string]interface{})["id"].(string)

	w, resp := env.do(t, http.MethodPut, "/api/v1/machines/"+id, gin.H{"dateDerniereRevision": "2025-02-01"})
	if w.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body = %s", w.Code, w.Body.String())
	}
	data := resp.Data.(map[string]interface{})
	if data["dateDerniereRevision"] != "2025-02-01T00:00:00Z" {
		t.Errorf("dateDerniereRevision = %v", data["dateDerniereRevision"])
	}
	// Absent fields keep their values.
	if data["nom"] != "Radiographie panoramique" {
		t.Errorf("nom = %v", data["nom"])
	}

	w, _ = env.do(t, http.MethodPut, "/api/v1/machines/"+id, gin.H{"dateAchat": "2021-1-1"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("non-padded date: status = %d, want 400", w.Code)
	}
	w, _ = env.do(t, http.MethodPut, "/api/v1/machines/missing", gin.H{"nom": "X"})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown id: status = %d, want 404", w.Code)
	}
}

func TestAssignMachineToRoomEndpoint(t *testing.T) {
	env := newMachineTestEnv(t)

	_, created := env.do(t, http.MethodPost, "/api/v1/machines", machineBody())
	id := created.Data.(map[string]interface{})["id"].(string)

	w, _ := env.do(t, http.MethodPost, "/api/v1/machines/assign-to-salle", gin.H{
		"machineId": id,
		"salleId":   env.room.ID,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("assign: status = %d, body = %s", w.Code, w.Body.String())
	}

	w, resp := env.do(t, http.MethodGet, "/api/v1/machines/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get machine: status = %d", w.Code)
	}
	rooms := resp.Data.(map[string]interface{})["salles"].([]interface{})
	if len(rooms) != 1 {
		t.Fatalf("assigned salles = %d, want 1", len(rooms))
	}
	if rooms[0].(map[string]interface{})["id"] != env.room.ID {
		t.Errorf("assigned salle id = %v", rooms[0].(map[string]interface{})["id"])
	}

	w, _ = env.do(t, http.MethodPost, "/api/v1/machines/assign-to-salle", gin.H{
		"machineId": "missing",
		"salleId":   env.room.ID,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown machine: status = %d, want 404", w.Code)
	}
	w, _ = env.do(t, http.MethodPost, "/api/v1/machines/assign-to-salle", gin.H{
		"machineId": id,
		"salleId":   "missing",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown salle: status = %d, want 404", w.Code)
	}
}

func TestDeleteMachineEndpoint(t *testing.T) {
	env := newMachineTestEnv(t)

	_, created := env.do(t, http.MethodPost, "/api/v1/machines", machineBody())
	id := created.Data.(map[string]interface{})["id"].(string)

	w, _ := env.do(t, http.MethodDelete, "/api/v1/machines/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", w.Code)
	}
	w, _ = env.do(t, http.MethodGet, "/api/v1/machines/"+id, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("get deleted machine: status = %d, want 404", w.Code)
	}
	w, _ = env.do(t, http.MethodDelete, "/api/v1/machines/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete unknown id: status = %d, want 404", w.Code)
	}
}
