package integration

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"
)

// today returns the current UTC date, which always falls inside the
// first seeded month of a fresh budget.
func today() string {
	return time.Now().UTC().Format("2006-01-02")
}

func monthTotals(t *testing.T, app *testApp, monthID, userID string) map[string]interface{} {
	t.Helper()
	rec := app.request("GET", fmt.Sprintf("/api/month/%s", monthID), "", userID)
	if rec.Code != http.StatusOK {
		t.Fatalf("get month failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)
}

func TestExpenseFlow_OneOffLifecycle(t *testing.T) {
	app := setupApp(t)
	budget, monthIDs := app.createBudget(t, "expense-user")
	budgetID := budget["id"].(string)
	monthID := monthIDs[0]

	// Step 1: A fresh month materializes empty
	details := monthTotals(t, app, monthID, "expense-user")
	month := details["month_details"].(map[string]interface{})
	if month["total_expenses_cents"].(float64) != 0 {
		t.Fatalf("expected empty month, got totals %v", month)
	}

	// Step 2: Submit a one-off expense of $45.50
	body := fmt.Sprintf(`{"budget_id":%q,"month_id":%q,"description":"Groceries","amount":"45.50","date":%q}`,
		budgetID, monthID, today())
	rec := app.request("POST", "/api/expense", body, "expense-user")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	details = monthTotals(t, app, monthID, "expense-user")
	month = details["month_details"].(map[string]interface{})
	if month["total_expenses_cents"].(float64) != 4550 {
		t.Errorf("expected total_expenses_cents 4550, got %v", month["total_expenses_cents"])
	}
	if month["expenses_paid_cents"].(float64) != 0 {
		t.Errorf("expected expenses_paid_cents 0, got %v", month["expenses_paid_cents"])
	}
	if month["balance_cents"].(float64) != -4550 {
		t.Errorf("expected balance_cents -4550, got %v", month["balance_cents"])
	}
	expenses := details["expenses"].([]interface{})
	if len(expenses) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(expenses))
	}
	occurrence := expenses[0].(map[string]interface{})
	occurrenceID := occurrence["id"].(string)
	if occurrence["description"] != "Groceries" {
		t.Errorf("expected description 'Groceries', got %v", occurrence["description"])
	}

	// Step 3: Mark it paid
	rec = app.request("POST", fmt.Sprintf("/api/expense/%s", occurrenceID), `{"is_paid":true}`, "expense-user")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	details = monthTotals(t, app, monthID, "expense-user")
	month = details["month_details"].(map[string]interface{})
	if month["expenses_paid_cents"].(float64) != 4550 {
		t.Errorf("expected expenses_paid_cents 4550 after paying, got %v", month["expenses_paid_cents"])
	}

	// Step 4: Delete it from this month
	rec = app.request("DELETE", fmt.Sprintf("/api/expense/%s?scope=this", occurrenceID), "", "expense-user")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	details = monthTotals(t, app, monthID, "expense-user")
	month = details["month_details"].(map[string]interface{})
	if month["total_expenses_cents"].(float64) != 0 {
		t.Errorf("expected totals back to 0 after delete, got %v", month["total_expenses_cents"])
	}
	if len(details["expenses"].([]interface{})) != 0 {
		t.Error("expected expense list to be empty after delete")
	}
}

func TestIncomeFlow_RecurringDefinition(t *testing.T) {
	app := setupApp(t)
	budget, monthIDs := app.createBudget(t, "income-user")
	budgetID := budget["id"].(string)
	monthID := monthIDs[0]

	// Step 1: Submit a monthly recurring income of $2500.00
	body := fmt.Sprintf(`{"budget_id":%q,"description":"Salary","amount":"2500.00","date":%q,"frequency_type":"Recurring","frequency_unit":"Monthly"}`,
		budgetID, today())
	rec := app.request("POST", "/api/income", body, "income-user")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Step 2: The current month carries the expanded occurrence
	rec = app.request("GET", fmt.Sprintf("/api/income/%s", monthID), "", "income-user")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	income := parseJSONList(t, rec)
	if len(income) != 1 {
		t.Fatalf("expected 1 income occurrence, got %d", len(income))
	}
	occurrence := income[0].(map[string]interface{})
	if occurrence["amount_cents"].(float64) != 250000 {
		t.Errorf("expected amount_cents 250000, got %v", occurrence["amount_cents"])
	}
	occurrenceID := occurrence["id"].(string)

	details := monthTotals(t, app, monthID, "income-user")
	month := details["month_details"].(map[string]interface{})
	if month["total_income_cents"].(float64) != 250000 {
		t.Errorf("expected total_income_cents 250000, got %v", month["total_income_cents"])
	}

	// Step 3: The definition shows up in the registry listing
	rec = app.request("GET", fmt.Sprintf("/api/definitions?budget_id=%s&kind=income", budgetID), "", "income-user")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	page := parseJSON(t, rec)
	if page["total_items"].(float64) != 1 {
		t.Fatalf("expected 1 definition, got %v", page["total_items"])
	}
	definition := page["data"].([]interface{})[0].(map[string]interface{})
	if definition["description"] != "Salary" {
		t.Errorf("expected description 'Salary', got %v", definition["description"])
	}

	// Step 4: Deleting the income removes the whole schedule
	rec = app.request("DELETE", fmt.Sprintf("/api/income/%s", occurrenceID), "", "income-user")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", fmt.Sprintf("/api/income/%s", monthID), "", "income-user")
	if len(parseJSONList(t, rec)) != 0 {
		t.Error("expected no income occurrences after deleting the schedule")
	}
	rec = app.request("GET", fmt.Sprintf("/api/definitions?budget_id=%s", budgetID), "", "income-user")
	page = parseJSON(t, rec)
	if page["total_items"].(float64) != 0 {
		t.Errorf("expected no definitions after delete, got %v", page["total_items"])
	}
}

func TestExpenseFlow_DeleteMany(t *testing.T) {
	app := setupApp(t)
	budget, monthIDs := app.createBudget(t, "bulk-user")
	budgetID := budget["id"].(string)
	monthID := monthIDs[0]

	for i, name := range []string{"Rent", "Internet", "Water"} {
		body := fmt.Sprintf(`{"budget_id":%q,"month_id":%q,"description":%q,"amount":"%d.00","date":%q}`,
			budgetID, monthID, name, (i+1)*100, today())
		rec := app.request("POST", "/api/expense", body, "bulk-user")
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s failed: %d %s", name, rec.Code, rec.Body.String())
		}
	}

	details := monthTotals(t, app, monthID, "bulk-user")
	expenses := details["expenses"].([]interface{})
	if len(expenses) != 3 {
		t.Fatalf("expected 3 expenses, got %d", len(expenses))
	}

	var keep string
	var remove []string
	for _, e := range expenses {
		occurrence := e.(map[string]interface{})
		if occurrence["description"] == "Water" {
			keep = occurrence["description"].(string)
			continue
		}
		remove = append(remove, occurrence["id"].(string))
	}

	rec := app.request("DELETE", fmt.Sprintf("/api/expense/deleteMany/%s", strings.Join(remove, ",")), "", "bulk-user")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	details = monthTotals(t, app, monthID, "bulk-user")
	expenses = details["expenses"].([]interface{})
	if len(expenses) != 1 {
		t.Fatalf("expected 1 expense left, got %d", len(expenses))
	}
	if expenses[0].(map[string]interface{})["description"] != keep {
		t.Errorf("expected %q to survive, got %v", keep, expenses[0].(map[string]interface{})["description"])
	}
}
