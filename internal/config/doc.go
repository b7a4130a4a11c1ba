// Package config loads the optional djboot.json project configuration.
//
// The file lives at the project root and configures the development proxy
// (port, host, watch paths, proxy rules, hot reload) and the boilerplate
// source defaults (local directory or S3 bucket/key). Every field has a
// working default, so a project without djboot.json behaves sensibly.
package config
