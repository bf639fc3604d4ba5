package steps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/cucumber/godog"

	"github.com/budget-tracker/backend/internal/application/usecase/alert"
)

// registerDomainSteps registers steps that build budget tracker state.
func registerDomainSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^today is "([^"]*)"$`, todayIs)
	ctx.Step(`^a user "([^"]*)" is registered$`, aUserIsRegistered)
	ctx.Step(`^I am logged in as "([^"]*)"$`, iAmLoggedInAs)

	ctx.Step(`^my monthly budget for (\d+)/(\d+) is ([\d.]+)$`, myMonthlyBudgetIs)
	ctx.Step(`^I have a category "([^"]*)" with a monthly limit of ([\d.]+)$`, iHaveACategoryWithLimit)
	ctx.Step(`^I record an? (income|expense) "([^"]*)" of ([\d.]+) on "([^"]*)"$`, iRecordATransaction)
	ctx.Step(`^I record an? (income|expense) "([^"]*)" of ([\d.]+) on "([^"]*)" in category "([^"]*)"$`, iRecordATransactionInCategory)
	ctx.Step(`^I have an? (outgoing|incoming) debt with "([^"]*)" of ([\d.]+) due on "([^"]*)"$`, iHaveADebt)
	ctx.Step(`^I have a saving goal "([^"]*)" of ([\d.]+) created on "([^"]*)" and due on "([^"]*)"$`, iHaveASavingGoal)
	ctx.Step(`^I deposit ([\d.]+) into goal "([^"]*)" on "([^"]*)"$`, iDepositIntoGoal)

	ctx.Step(`^the (debts|goals) sweep runs$`, theSweepRuns)
	ctx.Step(`^the sweep should have checked (\d+) with (\d+) failures?$`, theSweepShouldHaveChecked)
	ctx.Step(`^I should have (\d+) unread alerts?$`, iShouldHaveUnreadAlerts)
	ctx.Step(`^I should have (\d+) unread "([^"]*)" alerts?$`, iShouldHaveUnreadAlertsOfType)

	ctx.Step(`^the email provider rejects emails with status (\d+) and message "([^"]*)"$`, theEmailProviderRejects)
	ctx.Step(`^the email worker runs$`, theEmailWorkerRuns)
	ctx.Step(`^(\d+) emails? should have been sent to "([^"]*)"$`, emailsShouldHaveBeenSentTo)
	ctx.Step(`^the last email should have the subject "([^"]*)"$`, theLastEmailShouldHaveTheSubject)

	ctx.Step(`^the db should contain (\d+) objects in the "([^"]*)" table$`, theDbShouldContainObjectsInTheTable)
	ctx.Step(`^the db should contain (\d+) objects in the "([^"]*)" table with the values:$`, theDbShouldContainObjectsWithTheValues)
}

func todayIs(ctx context.Context, day string) error {
	date, err := time.Parse(time.DateOnly, day)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", day, err)
	}
	GetTestContext(ctx).clock.SetCurrentTime(date.Add(9 * time.Hour))
	return nil
}

func aUserIsRegistered(ctx context.Context, email string) error {
	return GetTestContext(ctx).register(email)
}

func iAmLoggedInAs(ctx context.Context, email string) error {
	tc := GetTestContext(ctx)
	var users int64
	if err := testDB.DbConn.Table("users").Where("email = ?", email).Count(&users).Error; err != nil {
		return err
	}
	if users == 0 {
		if err := tc.register(email); err != nil {
			return err
		}
	}

	tc.token = ""
	if err := tc.sendJSON(http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    email,
		"password": defaultPassword,
	}); err != nil {
		return err
	}
	token, err := tc.field("token")
	if err != nil {
		return err
	}
	tc.token = fmt.Sprintf("%v", token)
	return nil
}

func (t *TestContext) register(email string) error {
	name, _, _ := strings.Cut(email, "@")
	return t.sendJSON(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"name":                  name,
		"email":                 email,
		"password":              defaultPassword,
		"password_confirmation": defaultPassword,
	})
}

func myMonthlyBudgetIs(ctx context.Context, month, year int, amount float64) error {
	return GetTestContext(ctx).sendJSON(http.MethodPost, "/api/v1/monthly-budget", map[string]any{
		"month":  month,
		"year":   year,
		"amount": amount,
	})
}

func iHaveACategoryWithLimit(ctx context.Context, name string, limit float64) error {
	tc := GetTestContext(ctx)
	if err := tc.sendJSON(http.MethodPost, "/api/v1/categories", map[string]any{
		"name":          name,
		"monthly_limit": limit,
	}); err != nil {
		return err
	}
	return tc.saveID(name)
}

func iRecordATransaction(ctx context.Context, kind, description string, amount float64, date string) error {
	return GetTestContext(ctx).recordTransaction(kind, description, amount, date, "")
}

func iRecordATransactionInCategory(ctx context.Context, kind, description string, amount float64, date, category string) error {
	tc := GetTestContext(ctx)
	categoryID, ok := tc.saved[category]
	if !ok {
		return fmt.Errorf("unknown category %q", category)
	}
	return tc.recordTransaction(kind, description, amount, date, categoryID)
}

func (t *TestContext) recordTransaction(kind, description string, amount float64, date, categoryID string) error {
	payload := map[string]any{
		"type":        kind,
		"description": description,
		"amount":      amount,
		"date":        date,
	}
	if categoryID != "" {
		payload["category_id"] = categoryID
	}
	if err := t.sendJSON(http.MethodPost, "/api/v1/transactions", payload); err != nil {
		return err
	}
	return t.saveID(description)
}

func iHaveADebt(ctx context.Context, kind, person string, amount float64, dueDate string) error {
	tc := GetTestContext(ctx)
	if err := tc.sendJSON(http.MethodPost, "/api/v1/debts", map[string]any{
		"type":     kind,
		"person":   person,
		"amount":   amount,
		"due_date": dueDate,
	}); err != nil {
		return err
	}
	return tc.saveID(person)
}

// iHaveASavingGoal creates the goal through the API and then backdates it,
// since goal schedules start at the creation day.
func iHaveASavingGoal(ctx context.Context, title string, target float64, createdOn, deadline string) error {
	tc := GetTestContext(ctx)
	created, err := time.Parse(time.DateOnly, createdOn)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", createdOn, err)
	}

	if err := tc.sendJSON(http.MethodPost, "/api/v1/goals", map[string]any{
		"title":         title,
		"target_amount": target,
		"deadline":      deadline,
	}); err != nil {
		return err
	}
	if err := tc.saveID(title); err != nil {
		return err
	}

	return testDB.DbConn.Table("saving_goals").
		Where("id = ?", tc.saved[title]).
		Update("created_at", created.Add(9*time.Hour)).Error
}

func iDepositIntoGoal(ctx context.Context, amount float64, title, date string) error {
	tc := GetTestContext(ctx)
	goalID, ok := tc.saved[title]
	if !ok {
		return fmt.Errorf("unknown goal %q", title)
	}
	return tc.sendJSON(http.MethodPost, "/api/v1/goals/"+goalID+"/deposits", map[string]any{
		"amount": amount,
		"date":   date,
	})
}

func theSweepRuns(ctx context.Context, sweep string) error {
	tc := GetTestContext(ctx)
	name := alert.SweepDebts
	if sweep == "goals" {
		name = alert.SweepGoals
	}
	out, err := tc.injector.Scheduler.RunNow(ctx, name)
	if err != nil {
		return fmt.Errorf("sweep %s failed: %w", name, err)
	}
	tc.sweep = out
	return nil
}

func theSweepShouldHaveChecked(ctx context.Context, checked, failed int) error {
	tc := GetTestContext(ctx)
	if tc.sweep == nil {
		return errors.New("no sweep has run")
	}
	if tc.sweep.Checked != checked || tc.sweep.Failed != failed {
		return fmt.Errorf("expected %d checked and %d failed, got %+v", checked, failed, *tc.sweep)
	}
	return nil
}

func iShouldHaveUnreadAlerts(ctx context.Context, count int) error {
	return GetTestContext(ctx).expectUnreadAlerts(count, "")
}

func iShouldHaveUnreadAlertsOfType(ctx context.Context, count int, alertType string) error {
	return GetTestContext(ctx).expectUnreadAlerts(count, alertType)
}

func (t *TestContext) expectUnreadAlerts(count int, alertType string) error {
	if err := t.sendJSON(http.MethodGet, "/api/v1/alerts?is_read=false", nil); err != nil {
		return err
	}
	items, _ := getFieldValue(t.response.body, "data").([]any)

	matched := 0
	for _, item := range items {
		if alertType == "" || getFieldValue(item, "type") == alertType {
			matched++
		}
	}
	if matched != count {
		return fmt.Errorf("expected %d unread %s alerts, got %d: %s", count, alertType, matched, t.response.raw)
	}
	return nil
}

func theEmailProviderRejects(ctx context.Context, status int, message string) error {
	resendMock.SetResponse(-1, http.MethodPost, resendEmailsPath, status, map[string]any{
		"statusCode": status,
		"name":       "validation_error",
		"message":    message,
	})
	return nil
}

// theEmailWorkerRuns processes the emails due at the scenario's clock.
func theEmailWorkerRuns(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc.injector.Worker == nil {
		return errors.New("email notifications are disabled")
	}

	tc.injector.Worker.ProcessNow(ctx)
	return nil
}

func emailsShouldHaveBeenSentTo(ctx context.Context, count int, recipient string) error {
	sent := 0
	for i := 0; i < resendMock.RequestCount(http.MethodPost, resendEmailsPath); i++ {
		body := resendMock.GetRequestBody(http.MethodPost, resendEmailsPath, i)
		to, _ := body["to"].([]any)
		if len(to) == 1 && to[0] == recipient {
			sent++
		}
	}
	if sent != count {
		return fmt.Errorf("expected %d emails to %s, got %d", count, recipient, sent)
	}
	return nil
}

func theLastEmailShouldHaveTheSubject(ctx context.Context, subject string) error {
	calls := resendMock.RequestCount(http.MethodPost, resendEmailsPath)
	if calls == 0 {
		return errors.New("no email was sent")
	}
	body := resendMock.GetRequestBody(http.MethodPost, resendEmailsPath, calls-1)
	if body["subject"] != subject {
		return fmt.Errorf("expected subject %q, got %v", subject, body["subject"])
	}
	if headers := resendMock.GetRequestHeaders(http.MethodPost, resendEmailsPath, calls-1); headers["Authorization"] != "Bearer re_test_key" {
		return fmt.Errorf("unexpected authorization header %q", headers["Authorization"])
	}
	return nil
}

func theDbShouldContainObjectsInTheTable(ctx context.Context, quantity int, table string) error {
	return countRows(table, quantity, nil)
}

func theDbShouldContainObjectsWithTheValues(ctx context.Context, quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(GetTestContext(ctx).expand(content.Content)), &criteria); err != nil {
		return err
	}
	return countRows(table, quantity, criteria)
}

func countRows(table string, quantity int, criteria map[string]any) error {
	entity, ok := testDB.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	query := testDB.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}
	if err := query.Find(entitySlicePtr.Interface()).Error; err != nil {
		return err
	}

	if count := entitySlicePtr.Elem().Len(); count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

// saveID remembers data.id of the last response under name.
func (t *TestContext) saveID(name string) error {
	id, err := t.field("data.id")
	if err != nil {
		return err
	}
	t.saved[name] = fmt.Sprintf("%v", id)
	return nil
}
