package commands

import (
	"encoding/json"
	"fmt"

	"github.com/jnowat/SteloPTC/internal/model"
	"github.com/jnowat/SteloPTC/internal/util"
)

// Handler executes one named command against the app. The payload is the
// raw JSON object from the request; handlers decode what they need.
type Handler func(a *App, token string, payload json.RawMessage) (any, error)

type idPayload struct {
	ID string `json:"id"`
}

func decode[T any](payload json.RawMessage) (*T, error) {
	var req T
	if len(payload) > 0 && string(payload) != "null" {
		if err := json.Unmarshal(payload, &req); err != nil {
			return nil, fmt.Errorf("%w: invalid payload: %v", util.ErrConstraint, err)
		}
	}
	return &req, nil
}

var registry = map[string]Handler{
	// auth
	"login": func(a *App, _ string, payload json.RawMessage) (any, error) {
		req, err := decode[model.LoginRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.Login(req)
	},
	"logout": func(a *App, token string, _ json.RawMessage) (any, error) {
		return nil, a.Logout(token)
	},
	"get_current_user": func(a *App, token string, _ json.RawMessage) (any, error) {
		return a.GetCurrentUser(token)
	},
	"list_users": func(a *App, token string, _ json.RawMessage) (any, error) {
		return a.ListUsers(token)
	},
	"create_user": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[model.CreateUserRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.CreateUser(token, req)
	},
	"update_user_role": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[UpdateUserRoleRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.UpdateUserRole(token, req)
	},

	// specimens
	"list_specimens":   searchSpecimens,
	"search_specimens": searchSpecimens,
	"get_specimen": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[idPayload](payload)
		if err != nil {
			return nil, err
		}
		return a.GetSpecimen(token, req.ID)
	},
	"get_specimen_by_accession": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[struct {
			AccessionNumber string `json:"accession_number"`
		}](payload)
		if err != nil {
			return nil, err
		}
		return a.GetSpecimenByAccession(token, req.AccessionNumber)
	},
	"create_specimen": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[model.CreateSpecimenRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.CreateSpecimen(token, req)
	},
	"update_specimen": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[model.UpdateSpecimenRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.UpdateSpecimen(token, req)
	},
	"delete_specimen": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[idPayload](payload)
		if err != nil {
			return nil, err
		}
		return nil, a.DeleteSpecimen(token, req.ID)
	},
	"get_specimen_stats": func(a *App, token string, _ json.RawMessage) (any, error) {
		return a.SpecimenStats(token)
	},

	// subcultures
	"list_subcultures": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[struct {
			SpecimenID string `json:"specimen_id"`
		}](payload)
		if err != nil {
			return nil, err
		}
		return a.ListSubcultures(token, req.SpecimenID)
	},
	"create_subculture": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[model.CreateSubcultureRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.CreateSubculture(token, req)
	},
	"update_subculture": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[model.UpdateSubcultureRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.UpdateSubculture(token, req)
	},

	// media
	"list_media": func(a *App, token string, _ json.RawMessage) (any, error) {
		return a.ListMediaBatches(token)
	},
	"get_media_batch": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[idPayload](payload)
		if err != nil {
			return nil, err
		}
		return a.GetMediaBatch(token, req.ID)
	},
	"create_media_batch": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[model.CreateMediaBatchRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.CreateMediaBatch(token, req)
	},
	"update_media_batch": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[model.UpdateMediaBatchRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.UpdateMediaBatch(token, req)
	},
	"delete_media_batch": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[idPayload](payload)
		if err != nil {
			return nil, err
		}
		return nil, a.DeleteMediaBatch(token, req.ID)
	},

	// inventory
	"list_inventory": func(a *App, token string, _ json.RawMessage) (any, error) {
		return a.ListInventory(token)
	},
	"create_inventory_item": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[model.CreateInventoryItemRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.CreateInventoryItem(token, req)
	},
	"update_inventory_item": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[model.UpdateInventoryItemRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.UpdateInventoryItem(token, req)
	},
	"delete_inventory_item": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[idPayload](payload)
		if err != nil {
			return nil, err
		}
		return nil, a.DeleteInventoryItem(token, req.ID)
	},
	"adjust_stock": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[model.AdjustStockRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.AdjustStock(token, req)
	},
	"get_low_stock_alerts": func(a *App, token string, _ json.RawMessage) (any, error) {
		return a.LowStockAlerts(token)
	},

	// prepared solutions
	"list_prepared_solutions": func(a *App, token string, _ json.RawMessage) (any, error) {
		return a.ListPreparedSolutions(token)
	},
	"create_prepared_solution": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[model.CreatePreparedSolutionRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.CreatePreparedSolution(token, req)
	},
	"update_prepared_solution": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[model.UpdatePreparedSolutionRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.UpdatePreparedSolution(token, req)
	},
	"delete_prepared_solution": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[idPayload](payload)
		if err != nil {
			return nil, err
		}
		return nil, a.DeletePreparedSolution(token, req.ID)
	},

	// compliance
	"list_compliance_records": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[struct {
			SpecimenID *string `json:"specimen_id"`
		}](payload)
		if err != nil {
			return nil, err
		}
		return a.ListComplianceRecords(token, req.SpecimenID)
	},
	"create_compliance_record": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[model.CreateComplianceRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.CreateComplianceRecord(token, req)
	},
	"update_compliance_record": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[model.UpdateComplianceRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.UpdateComplianceRecord(token, req)
	},
	"get_compliance_flags": func(a *App, token string, _ json.RawMessage) (any, error) {
		return a.ComplianceFlags(token)
	},

	// reminders
	"list_reminders": func(a *App, token string, _ json.RawMessage) (any, error) {
		return a.ListReminders(token)
	},
	"get_active_reminders": func(a *App, token string, _ json.RawMessage) (any, error) {
		return a.ActiveReminders(token)
	},
	"create_reminder": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[model.CreateReminderRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.CreateReminder(token, req)
	},
	"update_reminder": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[model.UpdateReminderRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.UpdateReminder(token, req)
	},
	"dismiss_reminder": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[idPayload](payload)
		if err != nil {
			return nil, err
		}
		return nil, a.DismissReminder(token, req.ID)
	},
	"snooze_reminder": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[idPayload](payload)
		if err != nil {
			return nil, err
		}
		return nil, a.SnoozeReminder(token, req.ID)
	},

	// species
	"list_species": func(a *App, token string, _ json.RawMessage) (any, error) {
		return a.ListSpecies(token)
	},
	"create_species": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[model.CreateSpeciesRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.CreateSpecies(token, req)
	},
	"update_species": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[model.UpdateSpeciesRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.UpdateSpecies(token, req)
	},

	// audit
	"get_audit_log": func(a *App, token string, payload json.RawMessage) (any, error) {
		params, err := decode[model.AuditSearchParams](payload)
		if err != nil {
			return nil, err
		}
		return a.GetAuditLog(token, params)
	},

	// error logs
	"log_error": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[model.CreateErrorLogRequest](payload)
		if err != nil {
			return nil, err
		}
		return a.LogError(token, req)
	},
	"list_error_logs": func(a *App, token string, payload json.RawMessage) (any, error) {
		params, err := decode[model.ErrorLogSearchParams](payload)
		if err != nil {
			return nil, err
		}
		return a.ListErrorLogs(token, params)
	},
	"get_unread_error_count": func(a *App, token string, _ json.RawMessage) (any, error) {
		return a.UnreadErrorCount(token)
	},
	"mark_error_read": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[idPayload](payload)
		if err != nil {
			return nil, err
		}
		return nil, a.MarkErrorRead(token, req.ID)
	},
	"clear_error_logs": func(a *App, token string, _ json.RawMessage) (any, error) {
		return a.ClearErrorLogs(token)
	},

	// admin
	"reset_database": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[struct {
			Confirmation string `json:"confirmation"`
		}](payload)
		if err != nil {
			return nil, err
		}
		return a.ResetDatabase(token, req.Confirmation)
	},

	// backup
	"create_backup": func(a *App, token string, payload json.RawMessage) (any, error) {
		req, err := decode[struct {
			Destination *string `json:"destination"`
		}](payload)
		if err != nil {
			return nil, err
		}
		return a.CreateBackup(token, req.Destination)
	},
	"list_backups": func(a *App, token string, _ json.RawMessage) (any, error) {
		return a.ListBackups(token)
	},

	// export
	"export_specimens_csv": func(a *App, token string, _ json.RawMessage) (any, error) {
		return a.ExportSpecimensCSV(token)
	},
	"export_specimens_json": func(a *App, token string, _ json.RawMessage) (any, error) {
		return a.ExportSpecimensJSON(token)
	},
}

func searchSpecimens(a *App, token string, payload json.RawMessage) (any, error) {
	params, err := decode[model.SpecimenSearchParams](payload)
	if err != nil {
		return nil, err
	}
	return a.SearchSpecimens(token, params)
}

// Dispatch routes a named command to its handler
func (a *App) Dispatch(command, token string, payload json.RawMessage) (any, error) {
	h, ok := registry[command]
	if !ok {
		return nil, fmt.Errorf("unknown command %q", command)
	}
	return h(a, token, payload)
}

// Commands returns the registered command names, for introspection
func Commands() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}
