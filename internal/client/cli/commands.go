package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/crmclient/internal/client/access"
	"github.com/dmitrijs2005/crmclient/internal/client/enrich"
	"github.com/dmitrijs2005/crmclient/internal/client/models"
	"github.com/dmitrijs2005/crmclient/internal/client/validation"
)

var errNotHere = errors.New("command not available on this page")

func (a *App) printValidation(err error) {
	for _, e := range validation.Fields(err) {
		a.printf("  %s: %s\n", e.Field, e.Message)
	}
}

// Open navigates to path and renders the result.
func (a *App) Open(ctx context.Context, path string) error {
	a.render(ctx, a.nav.Go(path))
	return nil
}

// History lists the visited paths, oldest first.
func (a *App) History(context.Context) error {
	paths := a.nav.History()
	for i, p := range paths {
		marker := " "
		if i == len(paths)-1 {
			marker = "*"
		}
		a.printf("%s %d  %s\n", marker, i+1, p)
	}
	return nil
}

func (a *App) Back(ctx context.Context) error {
	s, ok := a.nav.Back()
	if !ok {
		a.printf("Nowhere to go back to.\n")
		return nil
	}
	a.render(ctx, s)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.in, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.in, "Password", a.out)
	if err != nil {
		return err
	}

	form := validation.Login{Email: email, Password: password}
	if err := form.Validate(); err != nil {
		a.printValidation(err)
		return err
	}

	if !a.session.Login(ctx, form.Email, form.Password) {
		a.printf("! %s\n", a.session.State().LastError)
		return errors.New(a.session.State().LastError)
	}
	a.printf("Welcome, %s!\n", a.session.State().User.FullName())
	return a.Open(ctx, access.PathHome)
}

func (a *App) Register(ctx context.Context) error {
	var form validation.Registration
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"First name", &form.FirstName},
		{"Last name", &form.LastName},
		{"Email", &form.Email},
		{"Username", &form.Username},
	}
	for _, f := range fields {
		v, err := GetSimpleText(a.in, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	var err error
	if form.Password, err = GetPassword(a.in, "Password", a.out); err != nil {
		return err
	}
	if form.PasswordConfirm, err = GetPassword(a.in, "Confirm password", a.out); err != nil {
		return err
	}

	if err := form.Validate(); err != nil {
		a.printValidation(err)
		return err
	}

	if !a.session.Register(ctx, form.ToRequest()) {
		a.printf("! %s\n", a.session.State().LastError)
		return errors.New(a.session.State().LastError)
	}
	a.printf("Account created. Welcome, %s!\n", a.session.State().User.FullName())
	return a.Open(ctx, access.PathHome)
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	a.drainChanges()
	a.printf("Logged out.\n")
	return a.Open(ctx, access.PathLogin)
}

// currentContact returns the id of the contact detail being shown.
func (a *App) currentContact() (int64, bool) {
	s := a.nav.Current()
	if !s.Found || s.Decision.Kind != access.KindRender || s.Target.Route.Name != "contact" {
		return 0, false
	}
	id, err := parseID(s.Target.Param("id"))
	return id, err == nil
}

// Score recomputes the lead score of the current contact in the background.
func (a *App) Score(ctx context.Context) error {
	id, ok := a.currentContact()
	if !ok || !a.features().Allowed(access.FeatureLeadScore) {
		return errNotHere
	}
	if a.scores.InFlight(id) {
		a.printf("Lead score is already being computed.\n")
		return enrich.ErrInFlight
	}

	a.printf("Computing lead score...\n")
	a.background.Add(1)
	go func() {
		defer a.background.Done()
		score, err := a.scores.Recompute(ctx, id)
		switch {
		case errors.Is(err, enrich.ErrInFlight):
			a.printf("Lead score is already being computed.\n")
		case err != nil:
			a.printf("Could not compute lead score, showing %s.\n", formatScore(score))
			a.handleErr(ctx, err)
		default:
			a.printf("Lead score for contact #%d: %s\n", id, formatScore(score))
		}
	}()
	return nil
}

func (a *App) Suggest(ctx context.Context) error {
	id, ok := a.currentContact()
	if !ok || !a.features().Allowed(access.FeatureFollowUps) {
		return errNotHere
	}
	suggestions, err := a.followUps.Reload(ctx, id)
	if err != nil {
		if errors.Is(err, enrich.ErrInFlight) {
			a.printf("Suggestions are already loading.\n")
		} else {
			a.handleErr(ctx, err)
		}
		return err
	}
	a.printSuggestions(suggestions)
	return nil
}

var contactTypes = []string{
	string(models.ContactPotentialCustomer),
	string(models.ContactCustomer),
	string(models.ContactPotentialPartner),
	string(models.ContactPartner),
}

func (a *App) promptContact(c models.Contact) (models.Contact, error) {
	keep := func(prompt, cur string) (string, error) {
		if cur != "" {
			prompt += " [" + cur + "]"
		}
		v, err := GetSimpleText(a.in, prompt, a.out)
		if err != nil || v == "" {
			return cur, err
		}
		return v, nil
	}

	var err error
	if c.FirstName, err = keep("First name", c.FirstName); err != nil {
		return c, err
	}
	if c.LastName, err = keep("Last name", c.LastName); err != nil {
		return c, err
	}
	if c.Email, err = keep("Email", c.Email); err != nil {
		return c, err
	}
	if c.Phone, err = keep("Phone", c.Phone); err != nil {
		return c, err
	}
	def := string(c.ContactType)
	if def == "" {
		def = string(models.ContactPotentialCustomer)
	}
	t, err := GetChoice(a.in, "Type", contactTypes, def, a.out)
	if err != nil {
		return c, err
	}
	c.ContactType = models.ContactType(t)
	if c.Notes, err = GetMultiline(a.in, "Notes", a.out); err != nil {
		return c, err
	}
	return c, nil
}

func (a *App) NewContact(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotHere
	}
	c, err := a.promptContact(models.Contact{})
	if err != nil {
		a.printf("%s\n", err)
		return err
	}
	if strings.TrimSpace(c.FirstName) == "" && strings.TrimSpace(c.LastName) == "" {
		a.printf("A contact needs a name.\n")
		return errors.New("missing name")
	}
	created, err := a.contacts.Create(ctx, c)
	if err != nil {
		a.handleErr(ctx, err)
		return err
	}
	a.printf("Contact #%d created.\n", created.ID)
	return a.Open(ctx, "/contacts/"+strconv.FormatInt(created.ID, 10))
}

func (a *App) EditContact(ctx context.Context) error {
	id, ok := a.currentContact()
	if !ok {
		return errNotHere
	}
	cur, _ := a.contacts.Cache().Get(id)
	c, err := a.promptContact(cur)
	if err != nil {
		a.printf("%s\n", err)
		return err
	}
	if _, err := a.contacts.Update(ctx, id, c); err != nil {
		a.handleErr(ctx, err)
		return err
	}
	a.printf("Contact updated.\n")
	a.render(ctx, a.nav.Current())
	return nil
}

func (a *App) DeleteContact(ctx context.Context) error {
	id, ok := a.currentContact()
	if !ok {
		return errNotHere
	}
	answer, err := GetSimpleText(a.in, "Delete this contact? (y/N)", a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		return nil
	}
	if err := a.contacts.Delete(ctx, id); err != nil {
		a.handleErr(ctx, err)
		return err
	}
	a.printf("Contact deleted. %d left.\n", a.contacts.Cache().Len())
	return a.Open(ctx, "/contacts")
}

func (a *App) AddPolicy(ctx context.Context) error {
	id, ok := a.currentContact()
	if !ok {
		return errNotHere
	}
	var p models.Policy
	var err error
	if p.PolicyType, err = GetSimpleText(a.in, "Policy type", a.out); err != nil {
		return err
	}
	if p.PolicyNumber, err = GetSimpleText(a.in, "Policy number", a.out); err != nil {
		return err
	}
	if p.Provider, err = GetSimpleText(a.in, "Provider", a.out); err != nil {
		return err
	}
	if _, err := a.contacts.AddPolicy(ctx, id, p); err != nil {
		a.handleErr(ctx, err)
		return err
	}
	a.printf("Policy added.\n")
	a.render(ctx, a.nav.Current())
	return nil
}

var taskTypes = []string{
	string(models.TaskCall),
	string(models.TaskMeeting),
	string(models.TaskEmail),
	string(models.TaskFollowUp),
	string(models.TaskOther),
}

func (a *App) NewTask(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errNotHere
	}
	var t models.Task
	var err error
	if t.Title, err = GetSimpleText(a.in, "Title", a.out); err != nil {
		return err
	}
	if strings.TrimSpace(t.Title) == "" {
		a.printf("A task needs a title.\n")
		return errors.New("missing title")
	}
	tt, err := GetChoice(a.in, "Type", taskTypes, string(models.TaskCall), a.out)
	if err != nil {
		a.printf("%s\n", err)
		return err
	}
	t.TaskType = models.TaskType(tt)

	due, err := GetSimpleText(a.in, "Due ("+dateLayout+")", a.out)
	if err != nil {
		return err
	}
	if t.DueDate, err = time.ParseInLocation(dateLayout, due, time.Local); err != nil {
		a.printf("Invalid date.\n")
		return err
	}
	if id, ok := a.currentContact(); ok {
		t.Contact = &id
	}

	created, err := a.tasks.Create(ctx, t)
	if err != nil {
		a.handleErr(ctx, err)
		return err
	}
	a.printf("Task #%d created.\n", created.ID)
	a.render(ctx, a.nav.Current())
	return nil
}

func (a *App) CompleteTask(ctx context.Context, rawID string) error {
	if !a.isLoggedIn() {
		return errNotHere
	}
	id, err := parseID(rawID)
	if err != nil {
		a.printf("%s\n", err)
		return err
	}
	if _, err := a.tasks.Complete(ctx, id); err != nil {
		a.handleErr(ctx, err)
		return err
	}
	a.printf("Task #%d completed. %d open.\n", id, openTasks(a.tasks.Cached()))
	return nil
}

func (a *App) DeleteTask(ctx context.Context, rawID string) error {
	if !a.isLoggedIn() {
		return errNotHere
	}
	id, err := parseID(rawID)
	if err != nil {
		a.printf("%s\n", err)
		return err
	}
	if err := a.tasks.Delete(ctx, id); err != nil {
		a.handleErr(ctx, err)
		return err
	}
	a.printf("Task #%d deleted. %d open.\n", id, openTasks(a.tasks.Cached()))
	return nil
}

func openTasks(tasks []models.Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}
