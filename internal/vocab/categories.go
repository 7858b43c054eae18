// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vocab

// topCategories maps the top-level archive codes to readable names.
var topCategories = map[string]string{
	"astro-ph": "Astrophysics",
	"cond-mat": "Condensed Matter",
	"gr-qc":    "General Relativity and Quantum Cosmology",
	"hep-ex":   "High Energy Physics - Experiment",
	"hep-lat":  "High Energy Physics - Lattice",
	"hep-ph":   "High Energy Physics - Phenomenology",
	"hep-th":   "High Energy Physics - Theory",
	"math-ph":  "Mathematical Physics",
	"nlin":     "Nonlinear Sciences",
	"nucl-ex":  "Nuclear Experiment",
	"nucl-th":  "Nuclear Theory",
	"physics":  "Physics",
	"quant-ph": "Quantum Physics",
	"math":     "Mathematics",
	"cs":       "Computer Science",
	"q-bio":    "Quantitative Biology",
	"q-fin":    "Quantitative Finance",
	"stat":     "Statistics",
}

// subCategories lists the subcategory codes per top-level archive.
var subCategories = map[string][]string{
	"astro-ph": {
		"astro-ph.GA", "astro-ph.CO", "astro-ph.EP",
		"astro-ph.HE", "astro-ph.IM", "astro-ph.SR",
	},
	"cond-mat": {
		"cond-mat.dis-nn", "cond-mat.mtrl-sci", "cond-mat.mes-hall",
		"cond-mat.other", "cond-mat.quant-gas", "cond-mat.soft",
		"cond-mat.stat-mech", "cond-mat.str-el", "cond-mat.supr-con",
	},
	"nlin": {
		"nlin.AO", "nlin.CG", "nlin.CD", "nlin.SI", "nlin.PS",
	},
	"physics": {
		"physics.acc-ph", "physics.app-ph", "physics.ao-ph",
		"physics.atom-ph", "physics.atm-clus", "physics.bio-ph",
		"physics.chem-ph", "physics.class-ph", "physics.comp-ph",
		"physics.data-an", "physics.flu-dyn", "physics.gen-ph",
		"physics.geo-ph", "physics.hist-ph", "physics.ins-det",
		"physics.med-ph", "physics.optics", "physics.ed-ph",
		"physics.soc-ph", "physics.plasm-ph", "physics.pop-ph",
		"physics.space-ph",
	},
	"math": {
		"math.AG", "math.AT", "math.AP", "math.CT", "math.CA",
		"math.CO", "math.AC", "math.CV", "math.DG", "math.DS",
		"math.FA", "math.GM", "math.GN", "math.GT", "math.GR",
		"math.HO", "math.IT", "math.KT", "math.LO", "math.MP",
		"math.MG", "math.NT", "math.NA", "math.OA", "math.OC",
		"math.PR", "math.QA", "math.RT", "math.RA", "math.SP",
		"math.ST", "math.SG",
	},
	"q-bio": {
		"q-bio.BM", "q-bio.CB", "q-bio.GN", "q-bio.MN", "q-bio.NC",
		"q-bio.OT", "q-bio.PE", "q-bio.QM", "q-bio.SC", "q-bio.TO",
	},
	"q-fin": {
		"q-fin.CP", "q-fin.EC", "q-fin.GN", "q-fin.MF", "q-fin.PM",
		"q-fin.PR", "q-fin.RM", "q-fin.ST", "q-fin.TR",
	},
	"stat": {
		"stat.AP", "stat.CO", "stat.ML", "stat.ME", "stat.OT", "stat.TH",
	},
}

// Builtin returns the compiled-in category vocabulary, used when the
// remote ListSets request is unreachable. Subcategories inherit the
// name of their top-level archive.
func Builtin() map[string]string {
	sets := make(map[string]string, len(topCategories))
	for code, name := range topCategories {
		sets[code] = name
		for _, sub := range subCategories[code] {
			sets[sub] = name
		}
	}
	return sets
}
