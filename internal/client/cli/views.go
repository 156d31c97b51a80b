package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/crmclient/internal/client/access"
	"github.com/dmitrijs2005/crmclient/internal/client/enrich"
	"github.com/dmitrijs2005/crmclient/internal/client/models"
	"github.com/dmitrijs2005/crmclient/internal/client/services"
	"github.com/dmitrijs2005/crmclient/internal/client/session"
)

const dateLayout = "2006-01-02 15:04"

// render prints the view for s.
func (a *App) render(ctx context.Context, s Screen) {
	if !s.Found {
		a.printf("Page not found: %s\n", s.Target.Path)
		return
	}

	switch s.Decision.Kind {
	case access.KindWait:
		a.printf("Loading...\n")
		return
	case access.KindForbidden:
		a.printf("This area is available to premium users only.\n")
		return
	case access.KindRedirect:
		// Only reached when a redirect chain is too long.
		a.printf("Redirecting to %s\n", s.Decision.Redirect)
		return
	}

	if s.Target.Route.Protected {
		a.renderNavigation(s.Target.Path)
	}

	switch s.Target.Route.Name {
	case "login":
		a.viewLogin()
	case "register":
		a.viewRegister()
	case "dashboard":
		a.viewDashboard(ctx)
	case "contacts":
		a.viewContacts(ctx)
	case "contact":
		a.viewContact(ctx, s.Target.Param("id"))
	case "tasks":
		a.viewTasks(ctx)
	case "pipelines":
		a.viewPipelines(ctx)
	case "team":
		a.viewTeam()
	case "profile":
		a.viewProfile()
	}
}

func (a *App) renderNavigation(current string) {
	items := access.Navigation(a.features())
	parts := make([]string, 0, len(items))
	for _, it := range items {
		label := it.Label
		if it.Path == current {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	a.printf("%s\n", strings.Join(parts, " | "))
}

func (a *App) viewLogin() {
	a.printf("== Login ==\n")
	if msg := a.session.State().LastError; msg != "" {
		a.printf("! %s\n", msg)
	}
	a.printf("Type 'login' to sign in or 'register' to create an account.\n")
}

func (a *App) viewRegister() {
	a.printf("== Register ==\n")
	if msg := a.session.State().LastError; msg != "" {
		a.printf("! %s\n", msg)
	}
	a.printf("Type 'register' to create an account or 'login' if you already have one.\n")
}

func (a *App) viewDashboard(ctx context.Context) {
	contacts, err := a.contacts.List(ctx)
	if err != nil {
		a.handleErr(ctx, err)
		return
	}
	upcoming, err := a.tasks.Upcoming(ctx)
	if err != nil {
		a.handleErr(ctx, err)
		return
	}

	counts := map[models.ContactType]int{}
	for _, c := range contacts {
		counts[c.ContactType]++
	}

	a.printf("== Dashboard ==\n")
	a.printf("Contacts: %d  Potential customers: %d  Potential partners: %d  Upcoming tasks: %d\n",
		len(contacts), counts[models.ContactPotentialCustomer], counts[models.ContactPotentialPartner], len(upcoming))

	for _, t := range upcoming {
		a.printf("  %s  %s\n", t.DueDate.Format(dateLayout), t.Title)
	}

	if !a.features().Allowed(access.FeatureDashboardInsights) {
		a.printf("Upgrade to premium for lead scores and follow-up suggestions.\n")
		return
	}

	top := topLeads(contacts, 3)
	if len(top) == 0 {
		return
	}
	a.printf("Top leads:\n")
	for _, c := range top {
		a.printf("  %3d%%  %s\n", c.LeadScore, c.FullName())
	}
}

// topLeads returns up to n contacts with a computed score, best first.
func topLeads(contacts []models.Contact, n int) []models.Contact {
	scored := make([]models.Contact, 0, len(contacts))
	for _, c := range contacts {
		if c.LeadScore > 0 {
			scored = append(scored, c)
		}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].LeadScore > scored[j].LeadScore })
	if len(scored) > n {
		scored = scored[:n]
	}
	return scored
}

func (a *App) viewContacts(ctx context.Context) {
	contacts, err := a.contacts.List(ctx)
	if err != nil {
		a.handleErr(ctx, err)
		return
	}

	a.printf("== Contacts ==\n")
	if len(contacts) == 0 {
		a.printf("No contacts yet. Type 'newcontact' to add one.\n")
		return
	}

	showScore := a.features().Allowed(access.FeatureLeadScore)
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	header := "ID\tNAME\tTYPE\tEMAIL"
	if showScore {
		header += "\tSCORE"
	}
	fmt.Fprintln(tw, header)
	for _, c := range contacts {
		row := fmt.Sprintf("%d\t%s\t%s\t%s", c.ID, c.FullName(), c.ContactType.Label(), c.Email)
		if showScore {
			row += "\t" + formatScore(c.LeadScore)
		}
		fmt.Fprintln(tw, row)
	}
	tw.Flush()
}

func formatScore(score int) string {
	if score == 0 {
		return "-"
	}
	return strconv.Itoa(score) + "%"
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func (a *App) viewContact(ctx context.Context, rawID string) {
	id, err := parseID(rawID)
	if err != nil {
		a.printf("%s\n", err)
		return
	}
	d, err := a.contacts.Detail(ctx, id)
	if err != nil {
		a.handleErr(ctx, err)
		return
	}

	a.printContactDetail(d)

	fs := a.features()
	if fs.Allowed(access.FeatureLeadScore) {
		a.leadScorePanel(ctx, d.Contact)
	}
	if fs.Allowed(access.FeatureFollowUps) {
		a.followUpPanel(ctx, id)
	}
}

func (a *App) printContactDetail(d *services.ContactDetail) {
	c := d.Contact
	a.printf("== %s ==\n", c.FullName())
	a.printf("Type:  %s\n", c.ContactType.Label())
	if c.Email != "" {
		a.printf("Email: %s\n", c.Email)
	}
	if c.Phone != "" {
		a.printf("Phone: %s\n", c.Phone)
	}
	if c.Notes != "" {
		a.printf("Notes: %s\n", c.Notes)
	}

	a.printf("Policies (%d):\n", len(d.Policies))
	for _, p := range d.Policies {
		a.printf("  %s  %s  %s\n", p.PolicyNumber, p.PolicyType, p.Provider)
	}
	a.printf("Tasks (%d):\n", len(d.Tasks))
	for _, t := range d.Tasks {
		a.printf("  %s %s  %s\n", checkbox(t.Completed), t.DueDate.Format(dateLayout), t.Title)
	}
}

func (a *App) leadScorePanel(ctx context.Context, c models.Contact) {
	score, err := a.scores.OnView(ctx, c)
	switch {
	case a.scores.InFlight(c.ID):
		a.printf("Lead score: computing...\n")
		return
	case err != nil && !errors.Is(err, enrich.ErrInFlight):
		a.logger.Warn(ctx, "lead score unavailable", "contact_id", c.ID, "error", err)
	}
	a.printf("Lead score: %s  (type 'score' to recompute)\n", formatScore(score))
}

func (a *App) followUpPanel(ctx context.Context, contactID int64) {
	suggestions, err := a.followUps.OnView(ctx, contactID)
	if err != nil && !errors.Is(err, enrich.ErrInFlight) {
		a.logger.Warn(ctx, "follow-up suggestions unavailable", "contact_id", contactID, "error", err)
	}
	a.printSuggestions(suggestions)
}

func (a *App) printSuggestions(suggestions []models.Suggestion) {
	a.printf("Follow-up suggestions (type 'suggest' to reload):\n")
	if len(suggestions) == 0 {
		a.printf("  none\n")
		return
	}
	for _, s := range suggestions {
		a.printf("  [%s] %s: %s\n", s.Priority, s.Title, s.Description)
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func (a *App) viewTasks(ctx context.Context) {
	tasks, err := a.tasks.List(ctx)
	if err != nil {
		a.handleErr(ctx, err)
		return
	}
	a.printf("== Tasks ==\n")
	if len(tasks) == 0 {
		a.printf("No tasks. Type 'newtask' to add one.\n")
		return
	}
	for _, t := range tasks {
		a.printf("%s #%d %s  %s  %s\n", checkbox(t.Completed), t.ID, t.DueDate.Format(dateLayout), t.TaskType, t.Title)
	}
}

var pipelineStages = []models.ContactType{
	models.ContactPotentialCustomer,
	models.ContactCustomer,
	models.ContactPotentialPartner,
	models.ContactPartner,
}

func (a *App) viewPipelines(ctx context.Context) {
	contacts, err := a.contacts.List(ctx)
	if err != nil {
		a.handleErr(ctx, err)
		return
	}

	byStage := map[models.ContactType][]models.Contact{}
	for _, c := range contacts {
		byStage[c.ContactType] = append(byStage[c.ContactType], c)
	}

	a.printf("== Pipelines ==\n")
	for _, stage := range pipelineStages {
		a.printf("%s (%d)\n", stage.Label(), len(byStage[stage]))
		for _, c := range byStage[stage] {
			a.printf("  #%d %s\n", c.ID, c.FullName())
		}
	}
}

func (a *App) viewTeam() {
	u := a.session.State().User
	a.printf("== Team ==\n")
	if u != nil {
		a.printf("  %s <%s>  owner\n", u.FullName(), u.Email)
	}
}

func (a *App) viewProfile() {
	s := a.session.State()
	if s.User == nil {
		return
	}
	u := s.User
	a.printf("== Profile ==\n")
	a.printf("Name:     %s\n", u.FullName())
	a.printf("Email:    %s\n", u.Email)
	if u.Username != "" {
		a.printf("Username: %s\n", u.Username)
	}
	a.printf("Plan:     %s\n", planName(s))
}

func planName(s session.State) string {
	if s.IsPremium() {
		return "Premium"
	}
	return "Basic"
}
