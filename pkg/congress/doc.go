// Package congress defines the bipartisanship dataset: per-member scores,
// legislative sessions, and the JSON codec for the static data file.
//
// # Overview
//
// The dataset is a list of [Session] values, one per numbered Congress. Each
// session carries up to two chambers of [Score] records. A chamber that was
// not scraped for a session is absent (nil); a chamber that was scraped but
// produced no rows is an empty, non-nil slice.
//
// Records are treated as immutable once loaded. Nothing in this package
// reorders them: the order in the data file is the order in which charts
// draw their bars.
//
// # Data File
//
// [ReadJSON] and [ImportJSON] decode the file produced by the scraper;
// [WriteJSON] and [ExportJSON] encode it with two-space indentation:
//
//	[
//	  {
//	    "startYear": 2021,
//	    "endYear": 2022,
//	    "sessionNo": 117,
//	    "senateScores": [
//	      {"number": 1, "firstName": "Susan", "lastName": "Collins",
//	       "stateAbbreviation": "ME", "partyAbbreviation": "R", "score": 2.73}
//	    ],
//	    "senateUrl": "https://www.thelugarcenter.org/ourwork-84.html"
//	  }
//	]
//
// # Executive Party
//
// [ExecutiveParty] maps a year to the party holding the White House. Charts
// use it to break ties when both parties seat the same number of members.
package congress
