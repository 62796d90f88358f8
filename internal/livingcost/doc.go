// Package livingcost estimates the monthly cost of living of a student in a
// city and turns it into a 0-100 affordability score.
//
// Prices are scraped from Numbeo. When the page cannot be read, or lacks some
// prices, the gaps are filled from a built-in table of Spanish cities and the
// estimate is marked with a lower confidence.
package livingcost
