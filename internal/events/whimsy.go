package events

// whimsyStyle pairs a FontAwesome icon macro with a color. Decoration is a
// display transform only; matching never depends on it.
type whimsyStyle struct {
	icon  string
	color string
}

var whimsyStyles = map[string]whimsyStyle{
	"New Year's Day":    {`\faGlassCheers`, "purple"},
	"MLK Day":           {`\faHandsHelping`, "black"},
	"Valentine's Day":   {`\faHeart`, "magenta"},
	"President's Day":   {`\faFlagUsa`, "blue"},
	"St. Patrick's Day": {`\faLeaf`, "green"},
	"Easter":            {`\faEgg`, "violet"},
	"Mother's Day":      {`\faHeart`, "pink"},
	"Memorial Day":      {`\faFlagUsa`, "blue"},
	"Father's Day":      {`\faUserTie`, "blue"},
	"Juneteenth":        {`\faStar`, "black"},
	"Independence Day":  {`\faStar`, "blue"},
	"Labor Day":         {`\faHammer`, "brown"},
	"Columbus Day":      {`\faShip`, "blue"},
	"Halloween":         {`\faGhost`, "orange"},
	"Election Day":      {`\faVoteYea`, "blue"},
	"Veterans Day":      {`\faMedal`, "olive"},
	"Thanksgiving":      {`\faUtensils`, "brown"},
	"Christmas":         {`\faTree`, "red"},
	"Birthday":          {`\faBirthdayCake`, "teal"},
	"Anniversary":       {`\faRing`, "orange"},
}

// WhimsyDecorate exposes decoration for title-page listings, which style
// names outside of date resolution.
func WhimsyDecorate(label, styleKey string, enabled bool) string {
	r := Resolver{whimsy: enabled}
	return r.decorate(label, styleKey)
}
