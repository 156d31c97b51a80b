package access

// Feature names a premium-only capability.
type Feature string

const (
	FeatureTeam              Feature = "team"
	FeatureLeadScore         Feature = "lead_score"
	FeatureFollowUps         Feature = "follow_ups"
	FeatureDashboardInsights Feature = "dashboard_insights"
)

var premiumFeatures = map[Feature]struct{}{
	FeatureTeam:              {},
	FeatureLeadScore:         {},
	FeatureFollowUps:         {},
	FeatureDashboardInsights: {},
}

// Entitlements is the part of the session the feature gate reads.
// session.State and *session.Manager both satisfy it.
type Entitlements interface {
	IsPremium() bool
}

// Features is the single feature admission decision point. The zero value
// admits nothing.
type Features struct {
	premium bool
}

func FeaturesFor(e Entitlements) Features {
	if e == nil {
		return Features{}
	}
	return Features{premium: e.IsPremium()}
}

// Allowed reports whether f may be shown or fetched. Unknown features are
// denied.
func (fs Features) Allowed(f Feature) bool {
	if _, ok := premiumFeatures[f]; !ok {
		return false
	}
	return fs.premium
}
