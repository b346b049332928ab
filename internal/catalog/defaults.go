package catalog

var builtin = []Definition{
	{
		Slug:    "empathetic-remote-management",
		Title:   "Empathetic Remote Management",
		Summary: "A four-part guide to leading distributed engineering teams with trust, tailored coaching, and sustainable pace.",
		Description: "From high-impact 1:1s to people-first coaching styles, this series walks through the daily habits " +
			"and guardrails that keep remote teams healthy, connected, and shipping. Each installment gives you " +
			"practical rituals to strengthen psychological safety while protecting your own energy as a leader.",
		CTA: &CTA{},
	},
}

func Default() *Catalog {
	return New(builtin...)
}
