package services

import (
	"errors"
	"testing"

	"github.com/etlasneha/greenzone/models"
	"github.com/etlasneha/greenzone/utils"

	"gorm.io/datatypes"
)

var (
	alice      = utils.Identity{UserID: 1, Email: "alice@campus.edu", Name: "Alice", Role: models.RoleUser}
	bob        = utils.Identity{UserID: 2, Email: "bob@campus.edu", Name: "Bob", Role: models.RoleUser}
	rootAdmin  = utils.Identity{UserID: 3, Email: "admin@campus.edu", Name: "Admin", Role: models.RoleAdmin}
	aliceOwned = models.Report{ID: 10, Location: "Block C", UserEmail: "alice@campus.edu"}
)

func TestReportDeleteMode(t *testing.T) {
	tests := []struct {
		name     string
		identity utils.Identity
		report   models.Report
		want     DeleteMode
	}{
		{"owner soft-deletes", alice, aliceOwned, SoftDelete},
		{"stranger denied", bob, aliceOwned, DeleteDenied},
		{"admin hard-deletes others' reports", rootAdmin, aliceOwned, HardDelete},
		{
			"admin soft-deletes their own report",
			rootAdmin,
			models.Report{ID: 11, UserEmail: "admin@campus.edu"},
			SoftDelete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReportDeleteMode(tt.identity, tt.report); got != tt.want {
				t.Errorf("got mode %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVisibleReports(t *testing.T) {
	reports := []models.Report{
		{ID: 1, UserEmail: "alice@campus.edu"},
		{ID: 2, UserEmail: "alice@campus.edu", DeletedBy: datatypes.JSONSlice[string]{"alice@campus.edu"}},
		{ID: 3, UserEmail: "bob@campus.edu", DeletedBy: datatypes.JSONSlice[string]{"bob@campus.edu"}},
	}

	visible := VisibleReports(alice, reports)
	if len(visible) != 2 {
		t.Fatalf("alice should see 2 reports, got %d", len(visible))
	}
	for _, r := range visible {
		if r.ID == 2 {
			t.Error("alice should not see a report she soft-deleted")
		}
	}

	// Admins see everything, soft-deleted or not.
	if got := VisibleReports(rootAdmin, reports); len(got) != 3 {
		t.Errorf("admin should see all 3 reports, got %d", len(got))
	}
}

func TestSoftDeleteIdempotent(t *testing.T) {
	report := models.Report{ID: 1, UserEmail: "alice@campus.edu"}

	if changed := report.HideFor("alice@campus.edu"); !changed {
		t.Error("first soft delete should change the set")
	}
	if changed := report.HideFor("alice@campus.edu"); changed {
		t.Error("second soft delete should be a no-op")
	}
	if len(report.DeletedBy) != 1 {
		t.Errorf("deletedBy should hold one entry, got %d", len(report.DeletedBy))
	}
}

func TestValidateRoleChange(t *testing.T) {
	target := models.User{ID: 2, Email: "bob@campus.edu", Role: models.RoleUser}

	if err := ValidateRoleChange(rootAdmin, target, models.RoleAdmin); err != nil {
		t.Errorf("admin promoting a user should be allowed, got %v", err)
	}

	if err := ValidateRoleChange(alice, target, models.RoleAdmin); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-admin caller should get ErrForbidden, got %v", err)
	}

	if err := ValidateRoleChange(rootAdmin, target, models.RoleUser); !errors.Is(err, ErrRoleUnchanged) {
		t.Errorf("no-op change should get ErrRoleUnchanged, got %v", err)
	}

	if err := ValidateRoleChange(rootAdmin, target, "superuser"); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("unknown role should get ErrInvalidRole, got %v", err)
	}
}
