package knitcalc

// Version is the current release of knitcalc.
const Version = "0.4.0"
