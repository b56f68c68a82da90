package domain

// ParseRankings runs a ranking page through extraction, line parsing and
// normalization. The only error is a page without a data block; rejected lines
// are counted in the returned stats.
func ParseRankings(markup string) (Rankings, error) {
	lines, err := Extract(markup)
	if err != nil {
		return Rankings{}, err
	}

	var out Rankings
	out.Records = []NormalizedRecord{}
	for line := range lines {
		out.Stats.Lines++
		raw, ok := ParseLine(line)
		if !ok {
			out.Stats.Rejected++
			continue
		}
		out.Records = append(out.Records, Normalize(raw, out.Stats.Accepted))
		out.Stats.Accepted++
	}
	return out, nil
}
