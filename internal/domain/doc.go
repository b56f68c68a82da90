// Package domain parses all-time athletics ranking tables into typed records.
//
// # Data Source
//
// Ranking pages are plain HTML documents whose data lives in a single <PRE>
// block: one performance per line, columns separated by runs of spaces. The
// service fetches one page per event code (see package catalog) and hands the
// raw markup to [ParseRankings].
//
// # Line Conventions
//
// A data line looks like:
//
//	1    9.58    +0.9  Usain Bolt        JAM    21.08.86    1        Berlin      16.08.2009
//
// Columns are rank, time, optional wind, athlete, country, birth date,
// position (round and placing, e.g. "1", "1q2", "2h1"), location and date.
// Single spaces occur inside fields ("Usain Bolt", "New York"), so the
// tokenizer only splits on runs of two or more whitespace characters.
//
// Non-data lines are dropped before tokenizing:
//
//	Lines starting with + # * = - are rules, headers and footnote markers.
//	Lines mentioning "indoor", "oversized" or "intermediate" annotate marks
//	that are not comparable with the main list.
//
// Wind:
//
//	Sprints, hurdles and horizontal jumps carry a wind reading; other events
//	do not. There is no column marker, so [ClassifyWind] infers the column from
//	token count, shape ("+0.9", "-1.2", "±0.0") and plausibility (|w| ≤ 10 m/s).
//
// Time format:
//
//	"h:mm:ss.f" (marathon), "m:ss.ff" (middle distance) or a bare number
//	(sprints, or metres/points for field events and combined events). Trailing
//	flags such as "A" (altitude) or "h" (hand timing) are ignored.
//
// Dates:
//
//	Event dates are "DD.MM.YYYY"; birth dates are usually "DD.MM.YY". Two-digit
//	years above 30 are read as 19YY, the rest as 20YY (see [ResolveYear]). The
//	cutoff is a heuristic: athletes born close to it can be assigned the wrong
//	century.
//
// # Day Ordinals
//
// [DateOrdinal] maps a date onto a simplified 360-day calendar
// (year*360 + month*30 + day). It is only good for ordering and coarse
// bucketing; it is not a day count and must not be used for calendar
// arithmetic. The 31st of a month lands on the same ordinal as the 1st of
// the next. Ages derived from it ([NormalizedRecord.AgeYears]) are
// approximate.
package domain
