package main

// General API documentation for swaggo. Run `make swagger-gen` to generate docs.
//
// @title           aqicast API
// @version         1.0
// @description     HTTP API for per-city AQI forecasts from pre-trained models.
//
// @contact.name   aqicast maintainers
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
