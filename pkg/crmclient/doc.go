// Package crmclient provides the main entry point for creating CRM API
// clients. It validates and normalizes the configuration, then wires the
// execution engine, transport and credential holder together behind the
// crm.Client interface.
package crmclient
