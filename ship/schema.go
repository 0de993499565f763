package ship

import "github.com/santhosh-tekuri/jsonschema/v5"

const schemaURL = "shipvox://ship.schema.json"

// shipSchema mirrors the JsonShipInfo / JsonGridGroup / JsonGrid shapes.
// Only shipName, gridInfo and the grid dimensions are mandatory.
const shipSchema = `{
  "type": "object",
  "required": ["shipName", "gridInfo"],
  "properties": {
    "shipName":   {"type": "string"},
    "hangarSize": {"type": "string"},
    "cargoSize":  {"type": "number"},
    "canLand":    {"type": ["boolean", "null"]},
    "gridInfo": {
      "type": "array",
      "items": {"$ref": "#/$defs/group"}
    }
  },
  "$defs": {
    "group": {
      "type": "object",
      "required": ["grids"],
      "properties": {
        "name":      {"type": "string"},
        "positionX": {"type": "number"},
        "positionY": {"type": "number"},
        "positionZ": {"type": "number"},
        "boxParams": {"$ref": "#/$defs/boxParams"},
        "grids": {
          "type": "array",
          "items": {"$ref": "#/$defs/grid"}
        }
      }
    },
    "boxParams": {
      "type": "object",
      "properties": {
        "size":    {"type": "number"},
        "offsetX": {"type": "number"},
        "offsetY": {"type": "number"},
        "offsetZ": {"type": "number"}
      }
    },
    "grid": {
      "type": "object",
      "required": ["sizeX", "sizeY", "sizeZ"],
      "properties": {
        "name":    {"type": "string"},
        "offsetX": {"type": "number"},
        "offsetY": {"type": "number"},
        "offsetZ": {"type": "number"},
        "centerX": {"type": "boolean"},
        "sizeX":   {"type": "integer"},
        "sizeY":   {"type": "integer"},
        "sizeZ":   {"type": "integer"}
      }
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString(schemaURL, shipSchema)
