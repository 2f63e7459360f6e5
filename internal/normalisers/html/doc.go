// Package html turns rendered post HTML back into readable plain text for
// terminal display.
package html
