// Command keytabctl builds, inspects, compares, merges, and protects
// Kerberos keytab files.
package main

func main() {
	execute()
}
