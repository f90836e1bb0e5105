// Package observer reads the Microsoft Defender real-time protection flag.
//
// On Windows the flag is queried through WMI, opening a new connection for
// every observation. Other platforms get a provider that always reports a
// connection failure.
package observer
