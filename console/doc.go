/*
Package console is the line-oriented shell of hbnb.

Each input line is split into words (double quotes group words) and
dispatched to a processor verb:

	(hbnb) create User
	0b4f1a5e-2d6c-4a8e-9d7b-1f3c5e7a9b2d
	(hbnb) update User 0b4f1a5e-2d6c-4a8e-9d7b-1f3c5e7a9b2d first_name "Betty Holberton"
	(hbnb) count User
	1

Errors are printed as one line, for example "** class doesn't exist **",
and never stop the loop. The prompt is only printed in interactive mode.
*/
package console
