/*
Package locale holds the fixed key/value message tables used to render
calculation results.

English and Norwegian tables are embedded. Extra tables can be loaded from
YAML or JSON files and are matched against requested languages with
golang.org/x/text/language, so "nb-NO" or an Accept-Language header resolve
to the closest registered table.

Messages use named placeholders:

	tbl.T(locale.KeyFinalStitches, locale.Params{"count": 114})
	// "You now have 114 stitches on the needle"
*/
package locale
